package minio

import (
	"Naomi/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传对象并返回对象键
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

// StatFile 校验对象存在
func StatFile(ctx context.Context, objectName string) error {
	_, err := Client.StatObject(ctx, MainBucket, objectName, minio.StatObjectOptions{})
	return err
}

// DeleteFile 删除对象
func DeleteFile(ctx context.Context, objectName string) error {
	return Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
}

// GetPublicURL 拼接外部访问地址
func GetPublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	cfg := config.Cfg.MinIO
	if cfg.UsePublicLink {
		return fmt.Sprintf("https://%s/%s/%s", cfg.ExternalEndpoint, MainBucket, objectName)
	}
	return objectName
}

// Store 将包级能力收拢为可注入的实例
type Store struct{}

func (Store) Stat(ctx context.Context, key string) error {
	return StatFile(ctx, key)
}

func (Store) Remove(ctx context.Context, key string) error {
	return DeleteFile(ctx, key)
}

func (Store) PublicURL(key string) string {
	return GetPublicURL(key)
}
