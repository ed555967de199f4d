package dto

// MediaUploadDTO 上传结果，Key 用于后续建帖
type MediaUploadDTO struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Kind string `json:"kind"`
	Size int64  `json:"size"`
}
