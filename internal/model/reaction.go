package model

// 表态类型，like 与 dislike 互斥，none 表示撤销
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
	ReactionNone    = "none"
)
