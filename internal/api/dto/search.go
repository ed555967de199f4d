package dto

type UserSimpleDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// GlobalSearchDTO 聚合搜索结果，两路并行检索
type GlobalSearchDTO struct {
	Posts []*PostDTO       `json:"posts"`
	Users []*UserSimpleDTO `json:"users"`
}
