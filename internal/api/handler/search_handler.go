package handler

import (
	"Naomi/internal/pkg/response"
	"Naomi/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// GlobalSearch 帖子与用户聚合检索
func (s *SearchHandler) GlobalSearch(c *gin.Context) {
	keyword := c.Query("q")

	result, err := s.searchService.GlobalSearch(c.Request.Context(), keyword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
