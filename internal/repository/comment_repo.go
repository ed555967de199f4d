package repository

import (
	"Naomi/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepo interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	ListByPostID(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error)
	CountByPostID(ctx context.Context, postID primitive.ObjectID) (int64, error)
	CountByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	DeletePromote(ctx context.Context, id, postID primitive.ObjectID) error
	React(ctx context.Context, id, userID primitive.ObjectID, kind string) (*model.Comment, error)
}

type commentRepoImpl struct {
	col *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &commentRepoImpl{
		col: db.Collection("comment"),
	}
}

func (s *commentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	_, err := s.col.InsertOne(ctx, comment)
	return err
}

// GetByID 评论不存在时返回 (nil, nil)
func (s *commentRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPostID 按创建时间升序返回帖子全部评论，树构建依赖这一次序
func (s *commentRepoImpl) ListByPostID(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.col.Find(ctx, bson.M{"post_id": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var comments []*model.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *commentRepoImpl) CountByPostID(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"post_id": postID})
}

// CountByPostIDs 一次聚合取回整批帖子的评论数，列表页不做逐帖查询
func (s *commentRepoImpl) CountByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post_id": bson.M{"$in": postIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$post_id", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// DeletePromote 删除评论并在同一事务内把其直接子评论提升为一级评论
// 更深层的后代 parent 指针不受影响，仍然有效
func (s *commentRepoImpl) DeletePromote(ctx context.Context, id, postID primitive.ObjectID) error {
	session, err := s.col.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := s.col.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, mongo.ErrNoDocuments
		}

		_, err = s.col.UpdateMany(sc,
			bson.M{"post_id": postID, "parent_id": id},
			bson.M{"$set": bson.M{"parent_id": nil}},
		)
		return nil, err
	})
	return err
}

// React 表态后返回更新后的评论，不存在时返回 (nil, nil)
func (s *commentRepoImpl) React(ctx context.Context, id, userID primitive.ObjectID, kind string) (*model.Comment, error) {
	var comment model.Comment
	if err := applyReaction(ctx, s.col, id, userID, kind, &comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}
