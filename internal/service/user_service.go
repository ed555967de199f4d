package service

import (
	"Naomi/internal/model"
	"Naomi/internal/repository"
	"context"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory 远端用户中心，本地档案缺失时回源
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type UserService interface {
	GetSimpleByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	hub      UserDirectory
}

func NewUserService(userRepo repository.UserRepo, hub UserDirectory) UserService {
	return &userServiceImpl{userRepo: userRepo, hub: hub}
}

// GetSimpleByIDs 批量取用户档案，本地未命中的逐个回源并补档
// 回源失败只记日志，缺失的用户在结果里留空
func (s *userServiceImpl) GetSimpleByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error) {
	result := make(map[primitive.ObjectID]*model.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	locals, err := s.userRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	for _, u := range locals {
		result[u.ID] = u
	}

	if s.hub == nil {
		return result, nil
	}

	for _, id := range unique {
		if _, ok := result[id]; ok {
			continue
		}
		user, err := s.hub.GetUser(ctx, id.Hex())
		if err != nil {
			log.WarnContext(ctx, "userhub lookup failed", "user_id", id.Hex(), "err", err)
			continue
		}
		result[id] = user
		if err := s.userRepo.Upsert(ctx, user); err != nil {
			log.WarnContext(ctx, "user profile backfill failed", "user_id", id.Hex(), "err", err)
		}
	}
	return result, nil
}
