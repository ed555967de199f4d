package dto

// PostDTO 帖子视图，计数由表态集合与评论聚合折算
type PostDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	MediaURL      string `json:"media_url"`
	MediaType     string `json:"media_type"`
	AuthorID      string `json:"author_id"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url"`
	LikesCount    int    `json:"likes_count"`
	DislikesCount int    `json:"dislikes_count"`
	CommentsCount int64  `json:"comments_count"`
	CreatedAt     string `json:"created_at"`
}

type PostCreateDTO struct {
	Title     string `json:"title" binding:"required"`
	MediaKey  string `json:"media_key" binding:"required"`
	MediaType string `json:"media_type" binding:"required,oneof=image video"`
}

type ReactionReq struct {
	Kind string `json:"kind" binding:"required,oneof=like dislike none"`
}

// ReactionDTO 表态后的最新计数
type ReactionDTO struct {
	Kind          string `json:"kind"`
	LikesCount    int    `json:"likes_count"`
	DislikesCount int    `json:"dislikes_count"`
}
