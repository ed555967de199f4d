package repository

import (
	"Naomi/internal/model"
	"context"
	"errors"
	log "log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrRetryExhausted 级联删除事务重试耗尽
var ErrRetryExhausted = errors.New("transaction retries exhausted")

const cascadeRetries = 3

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	ListAll(ctx context.Context) ([]*model.Post, error)
	SearchByTitle(ctx context.Context, keyword string, limit int64) ([]*model.Post, error)
	DeleteCascade(ctx context.Context, id primitive.ObjectID) error
	React(ctx context.Context, id, userID primitive.ObjectID, kind string) (*model.Post, error)
}

type postRepoImpl struct {
	col      *mongo.Collection
	comments *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col:      db.Collection("post"),
		comments: db.Collection("comment"),
	}
}

func (s *postRepoImpl) Create(ctx context.Context, post *model.Post) error {
	_, err := s.col.InsertOne(ctx, post)
	return err
}

// GetByID 帖子不存在时返回 (nil, nil)
func (s *postRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) ListAll(ctx context.Context) ([]*model.Post, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchByTitle 标题大小写不敏感的字面子串匹配，按创建时间倒序
// limit 为 0 表示不限制
func (s *postRepoImpl) SearchByTitle(ctx context.Context, keyword string, limit int64) ([]*model.Post, error) {
	filter := bson.M{"title": primitive.Regex{
		Pattern: regexp.QuoteMeta(keyword),
		Options: "i",
	}}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteCascade 同一事务内删除帖子与其全部评论，读者不会看到半删状态
// 帖子不存在时返回 mongo.ErrNoDocuments
func (s *postRepoImpl) DeleteCascade(ctx context.Context, id primitive.ObjectID) error {
	var lastErr error
	for attempt := 0; attempt < cascadeRetries; attempt++ {
		err := s.runCascade(ctx, id)
		if err == nil {
			return nil
		}
		lastErr = err

		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel("TransientTransactionError") {
			log.WarnContext(ctx, "cascade delete transaction transient failure, retrying",
				"post_id", id.Hex(), "attempt", attempt+1, "err", err)
			continue
		}
		return err
	}

	log.ErrorContext(ctx, "cascade delete transaction retries exhausted",
		"post_id", id.Hex(), "err", lastErr)
	return ErrRetryExhausted
}

func (s *postRepoImpl) runCascade(ctx context.Context, id primitive.ObjectID) error {
	session, err := s.col.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.comments.DeleteMany(sc, bson.M{"post_id": id}); err != nil {
			return nil, err
		}

		res, err := s.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}
		return nil, nil
	})
	return err
}

// React 表态后返回更新后的帖子，不存在时返回 (nil, nil)
func (s *postRepoImpl) React(ctx context.Context, id, userID primitive.ObjectID, kind string) (*model.Post, error) {
	var post model.Post
	if err := applyReaction(ctx, s.col, id, userID, kind, &post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}
