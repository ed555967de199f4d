package repository

import (
	"Naomi/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reactionUpdate 构造单条原子更新：加入一侧集合的同时从另一侧移除
// 两个集合在同一次服务端操作中变更，并发表态不会互相覆盖
func reactionUpdate(userID primitive.ObjectID, kind string) bson.M {
	switch kind {
	case model.ReactionLike:
		return bson.M{
			"$addToSet": bson.M{"likes": userID},
			"$pull":     bson.M{"dislikes": userID},
		}
	case model.ReactionDislike:
		return bson.M{
			"$addToSet": bson.M{"dislikes": userID},
			"$pull":     bson.M{"likes": userID},
		}
	default: // none，撤销表态
		return bson.M{
			"$pull": bson.M{"likes": userID, "dislikes": userID},
		}
	}
}

// applyReaction 对单个文档执行表态更新并解码更新后的文档
// 目标不存在时返回 mongo.ErrNoDocuments
func applyReaction(ctx context.Context, col *mongo.Collection, id, userID primitive.ObjectID, kind string, out interface{}) error {
	res := col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		reactionUpdate(userID, kind),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	return res.Decode(out)
}
