package service

import "errors"

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrNotLoggedIn      = errors.New("缺少用户身份")
	ErrNotOwner         = errors.New("无权操作他人内容")
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrCommentNotFound  = errors.New("评论不存在")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrTitleEmpty       = errors.New("标题不能为空")
	ErrCommentTextEmpty = errors.New("评论内容不能为空")
	ErrParentMismatch   = errors.New("父评论不属于该帖子")
	ErrFileNotSupported = errors.New("不支持的文件类型")
	ErrMediaUnavailable = errors.New("媒体服务不可用")
	ErrConflict         = errors.New("操作冲突，请稍后重试")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

// ErrorMap 业务错误到 HTTP 状态码的映射，response 包据此出参
var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrNotLoggedIn:      Unauthorized,
	ErrNotOwner:         Forbidden,
	ErrPostNotFound:     NotFound,
	ErrCommentNotFound:  NotFound,
	ErrUserNotFound:     NotFound,
	ErrTitleEmpty:       BadRequest,
	ErrCommentTextEmpty: BadRequest,
	ErrParentMismatch:   BadRequest,
	ErrFileNotSupported: BadRequest,
	ErrMediaUnavailable: ServiceUnavailable,
	ErrConflict:         Conflict,
	UnExpectedError:     InternalServerError,
}
