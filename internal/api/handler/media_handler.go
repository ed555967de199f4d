package handler

import (
	"Naomi/internal/api/dto"
	"Naomi/internal/model"
	"Naomi/internal/pkg/consts"
	"Naomi/internal/pkg/minio"
	"Naomi/internal/pkg/response"
	"Naomi/internal/service"
	"io"
	log "log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct {
	media service.MediaStore
}

func NewMediaHandler(media service.MediaStore) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload 上传媒体文件，类型以内容嗅探为准，不信任扩展名
func (s *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	contentType := http.DetectContentType(head[:n])

	var kind string
	switch {
	case strings.HasPrefix(contentType, consts.MimePrefixImage):
		kind = model.MediaTypeImage
	case strings.HasPrefix(contentType, consts.MimePrefixVideo):
		kind = model.MediaTypeVideo
	default:
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}

	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	key, err := minio.UploadFile(c.Request.Context(), objectName, file, fileHeader.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "media upload failed", "object", objectName, "err", err)
		response.Error(c, service.ErrMediaUnavailable)
		return
	}

	response.Success(c, dto.MediaUploadDTO{
		Key:  key,
		URL:  s.media.PublicURL(key),
		Kind: kind,
		Size: fileHeader.Size,
	})
}
