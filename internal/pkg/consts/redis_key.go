package consts

const (
	// PostCommentKey 帖子评论数缓存前缀
	PostCommentKey = "post:comment:count:"

	// MediaReconcileKey 级联删除时释放失败的媒体对象键集合
	MediaReconcileKey = "media:reconcile:set"
)
