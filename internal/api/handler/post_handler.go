package handler

import (
	"Naomi/internal/api/dto"
	"Naomi/internal/pkg/consts"
	"Naomi/internal/pkg/response"
	"Naomi/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPosts 帖子列表，sort 可选 hot/new，缺省 hot
func (s *PostHandler) ListPosts(c *gin.Context) {
	sortMode := c.DefaultQuery("sort", service.SortHot)

	posts, err := s.postService.ListPosts(c.Request.Context(), sortMode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// SearchPosts 标题关键词检索
func (s *PostHandler) SearchPosts(c *gin.Context) {
	keyword := c.Query("q")

	posts, err := s.postService.SearchPosts(c.Request.Context(), keyword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost 帖子详情
func (s *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("post_id")

	post, err := s.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost 发帖，媒体须先经上传接口取得对象键
func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetString(consts.CtxUserIDKey)
	post, err := s.postService.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除帖子，仅作者本人
func (s *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString(consts.CtxUserIDKey)

	if err := s.postService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ReactPost 对帖子表态，like/dislike/none
func (s *PostHandler) ReactPost(c *gin.Context) {
	var req dto.ReactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	postID := c.Param("post_id")
	userID := c.GetString(consts.CtxUserIDKey)

	result, err := s.postService.ReactPost(c.Request.Context(), userID, postID, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
