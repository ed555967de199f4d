package repository

import (
	"Naomi/internal/model"
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error)
	SearchByUsername(ctx context.Context, keyword string, limit int64) ([]*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection("user"),
	}
}

func (s *userRepoImpl) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchByUsername 用户名大小写不敏感的字面子串匹配
func (s *userRepoImpl) SearchByUsername(ctx context.Context, keyword string, limit int64) ([]*model.User, error) {
	filter := bson.M{"username": primitive.Regex{
		Pattern: regexp.QuoteMeta(keyword),
		Options: "i",
	}}

	findOptions := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
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

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Upsert 覆盖式写入，Kafka 同步与回源补档共用
func (s *userRepoImpl) Upsert(ctx context.Context, user *model.User) error {
	_, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": user.ID},
		user,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *userRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
