package service

import (
	"Naomi/internal/model"
	"math"
	"sort"
	"time"
)

const (
	SortHot = "hot"
	SortNew = "new"

	hotOffsetHours = 2.0
	hotGravity     = 1.5
)

// HotScore 热度分：净赞数随帖龄按幂次衰减
// 时钟偏差导致的负帖龄按 0 处理
func HotScore(likes, dislikes int, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return float64(likes-dislikes) / math.Pow(ageHours+hotOffsetHours, hotGravity)
}

// RankPosts 按指定模式返回排序后的新切片，不改动入参
// 分值相同按 ID 倒序，保证排序结果可复现
func RankPosts(posts []*model.Post, sortMode string, now time.Time) []*model.Post {
	ranked := make([]*model.Post, len(posts))
	copy(ranked, posts)

	switch sortMode {
	case SortNew:
		sort.SliceStable(ranked, func(i, j int) bool {
			if !ranked[i].CreatedAt.Equal(ranked[j].CreatedAt) {
				return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
			}
			return ranked[i].ID.Hex() > ranked[j].ID.Hex()
		})
	default: // hot
		sort.SliceStable(ranked, func(i, j int) bool {
			si := HotScore(len(ranked[i].Likes), len(ranked[i].Dislikes), ranked[i].CreatedAt, now)
			sj := HotScore(len(ranked[j].Likes), len(ranked[j].Dislikes), ranked[j].CreatedAt, now)
			if si != sj {
				return si > sj
			}
			return ranked[i].ID.Hex() > ranked[j].ID.Hex()
		})
	}
	return ranked
}
