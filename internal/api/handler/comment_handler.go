package handler

import (
	"Naomi/internal/api/dto"
	"Naomi/internal/pkg/consts"
	"Naomi/internal/pkg/response"
	"Naomi/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// GetComments 帖子评论树
func (s *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("post_id")

	comments, err := s.commentService.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// CreateComment 发评论，parent_id 非空时为回复
func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetString(consts.CtxUserIDKey)
	comment, err := s.commentService.AddComment(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论，仅作者本人
func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("comment_id")
	userID := c.GetString(consts.CtxUserIDKey)

	if err := s.commentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ReactComment 对评论表态
func (s *CommentHandler) ReactComment(c *gin.Context) {
	var req dto.ReactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	commentID := c.Param("comment_id")
	userID := c.GetString(consts.CtxUserIDKey)

	result, err := s.commentService.ReactComment(c.Request.Context(), userID, commentID, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
