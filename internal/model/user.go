package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 本地用户档案副本，由身份服务通过 Kafka 同步
type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Username  string             `bson:"username" json:"username"`
	AvatarURL string             `bson:"avatar_url" json:"avatarUrl"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
