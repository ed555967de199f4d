package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 评论文档，parent_id 为空表示一级评论
// parent_id 只允许指向同一帖子下已存在的评论
type Comment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID   `bson:"post_id" json:"postId"`
	AuthorID  primitive.ObjectID   `bson:"author_id" json:"authorId"`
	ParentID  *primitive.ObjectID  `bson:"parent_id" json:"parentId,omitempty"`
	Text      string               `bson:"text" json:"text"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Dislikes  []primitive.ObjectID `bson:"dislikes" json:"dislikes"`
	CreatedAt time.Time            `bson:"created_at" json:"createdAt"`
}
