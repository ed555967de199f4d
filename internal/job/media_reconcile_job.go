package job

import (
	"Naomi/internal/pkg/consts"
	"Naomi/internal/pkg/minio"
	"Naomi/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
)

// MediaReconcileJob 补删级联删除时释放失败的媒体对象
type MediaReconcileJob struct{}

func NewMediaReconcileJob() *MediaReconcileJob {
	return &MediaReconcileJob{}
}

func (s *MediaReconcileJob) Run() {
	ctx := context.Background()

	keys, err := redis.SMembers(ctx, consts.MediaReconcileKey)
	if err != nil {
		if !errors.Is(err, redis.ErrNotReady) {
			log.Error("failed to load media reconcile set", "err", err)
		}
		return
	}
	if len(keys) == 0 {
		return
	}

	log.Info("start media reconcile job", "pending", len(keys))
	count := 0

	for _, fileKey := range keys {
		if err := minio.DeleteFile(ctx, fileKey); err != nil {
			log.Error("failed to delete orphan media", "fileKey", fileKey, "err", err)
			continue
		}
		if err := redis.SRem(ctx, consts.MediaReconcileKey, fileKey); err != nil {
			log.Error("failed to remove reconciled key from redis", "fileKey", fileKey, "err", err)
			continue
		}
		count++
	}

	if count > 0 {
		log.Info("media reconcile job finished", "cleaned_count", count)
	}
}
