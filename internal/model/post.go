package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post 帖子文档，likes/dislikes 为互斥的用户 ID 集合
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	MediaKey  string               `bson:"media_key" json:"mediaKey"`   // MinIO 对象键
	MediaType string               `bson:"media_type" json:"mediaType"` // image / video
	AuthorID  primitive.ObjectID   `bson:"author_id" json:"authorId"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Dislikes  []primitive.ObjectID `bson:"dislikes" json:"dislikes"`
	CreatedAt time.Time            `bson:"created_at" json:"createdAt"`
}
