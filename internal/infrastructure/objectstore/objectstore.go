// Package objectstore 封装 MinIO 对象存储访问，提供媒体文件的
// 上传与删除能力。
package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config 描述对象存储连接参数。
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// NewClient 建立 MinIO 连接并确保目标 bucket 存在。
func NewClient(ctx context.Context, cfg Config, logger log.Logger) (*minio.Client, error) {
	helper := log.NewHelper(logger)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		helper.Infof("object store bucket created: %s", cfg.Bucket)
	}

	helper.Infof("object store connected: endpoint=%s bucket=%s", cfg.Endpoint, cfg.Bucket)
	return client, nil
}

// Gateway 以单一 bucket 为边界实现对象读写。Upload 返回的存储
// 路径即对象键，仓储层据此回填聚合字段。
type Gateway struct {
	client *minio.Client
	bucket string
	log    *log.Helper
}

// NewGateway 构造 Gateway。
func NewGateway(client *minio.Client, cfg Config, logger log.Logger) *Gateway {
	return &Gateway{
		client: client,
		bucket: cfg.Bucket,
		log:    log.NewHelper(logger),
	}
}

// Upload 写入对象并返回存储路径。
func (g *Gateway) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := g.client.PutObject(ctx, g.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	g.log.WithContext(ctx).Debugf("object stored: bucket=%s key=%s size=%d", g.bucket, key, size)
	return key, nil
}

// Delete 删除对象。对象不存在时 MinIO 返回成功，调用方无需区分。
func (g *Gateway) Delete(ctx context.Context, key string) error {
	if err := g.client.RemoveObject(ctx, g.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
