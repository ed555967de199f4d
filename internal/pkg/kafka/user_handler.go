package kafka

import (
	"Naomi/internal/model"
	"Naomi/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserEvent 用户中心广播的档案变更事件
type UserEvent struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Deleted   bool   `json:"deleted"`
}

// UserHandler 消费用户档案事件，同步本地 user 集合
type UserHandler struct {
	userRepo repository.UserRepo
}

func NewUserHandler(userRepo repository.UserRepo) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
	}
}

func (s *UserHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer setup")
	return nil
}

func (s *UserHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer cleanup")
	return nil
}

func (s *UserHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-user consume claim end")
	return nil
}

func (s *UserHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event UserEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return errors.Wrap(err, "unmarshal user event")
	}

	id, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return errors.Wrap(err, "malformed user id in event")
	}

	if event.Deleted {
		return s.userRepo.Delete(ctx, id)
	}

	return s.userRepo.Upsert(ctx, &model.User{
		ID:        id,
		Username:  event.Username,
		AvatarURL: event.AvatarURL,
		UpdatedAt: time.Now(),
	})
}
