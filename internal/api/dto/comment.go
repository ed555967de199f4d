package dto

// CommentDTO 评论节点，Replies 按创建时间递归嵌套
type CommentDTO struct {
	ID            string        `json:"id"`
	PostID        string        `json:"post_id"`
	ParentID      string        `json:"parent_id,omitempty"`
	AuthorID      string        `json:"author_id"`
	Username      string        `json:"username"`
	AvatarURL     string        `json:"avatar_url"`
	Text          string        `json:"text"`
	LikesCount    int           `json:"likes_count"`
	DislikesCount int           `json:"dislikes_count"`
	CreatedAt     string        `json:"created_at"`
	Replies       []*CommentDTO `json:"replies"`
}

type CommentCreateDTO struct {
	PostID   string `json:"post_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
	ParentID string `json:"parent_id"`
}
