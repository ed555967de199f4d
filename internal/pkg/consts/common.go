package consts

const (
	// CtxUserIDKey 网关校验后的用户标识在 gin Context 中的键
	CtxUserIDKey = "user_id"

	MimePrefixImage = "image/"
	MimePrefixVideo = "video/"
)
