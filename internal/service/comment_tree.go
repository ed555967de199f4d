package service

import "Naomi/internal/api/dto"

// BuildCommentTree 把平铺的评论列表组装成回复森林
// 入参须按创建时间升序，输出各层保持该次序
// 父节点缺失的评论提升为一级评论，不丢弃
func BuildCommentTree(comments []*dto.CommentDTO) []*dto.CommentDTO {
	byID := make(map[string]*dto.CommentDTO, len(comments))
	for _, c := range comments {
		if c.Replies == nil {
			c.Replies = make([]*dto.CommentDTO, 0)
		}
		byID[c.ID] = c
	}

	roots := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		// 父节点缺失或自指都按一级评论处理
		if c.ParentID == "" || c.ParentID == c.ID {
			roots = append(roots, c)
			continue
		}
		parent, ok := byID[c.ParentID]
		if !ok {
			roots = append(roots, c)
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}
	return roots
}
