// "Тупой" клиент объектного хранилища: выгрузка артефактов и листинг.

package s3storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ilkoid/poryadok-ai/pkg/config"
)

// ClientInterface определяет интерфейс S3 клиента.
// Используется для мокания в тестах и внедрения зависимостей.
type ClientInterface interface {
	UploadFile(ctx context.Context, localPath, key string) (UploadedObject, error)
	ListFiles(ctx context.Context, prefix string) ([]StoredObject, error)
}

type Client struct {
	api    *minio.Client
	bucket string
}

// Проверка что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)

// StoredObject - сырой объект из S3.
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// UploadedObject — результат выгрузки одного файла.
type UploadedObject struct {
	Key    string `json:"key"`
	Bucket string `json:"bucket"`
	Size   int64  `json:"size"`
}

// New создает клиент, используя наш конфиг.
func New(cfg config.S3Config) (*Client, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		api:    minioClient,
		bucket: cfg.Bucket,
	}, nil
}

// UploadFile выгружает локальный файл под указанным ключом.
//
// Пустой key — ключом становится базовое имя файла. Content-Type
// выводится из расширения.
func (c *Client) UploadFile(ctx context.Context, localPath, key string) (UploadedObject, error) {
	if key == "" {
		key = filepath.Base(localPath)
	}

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := c.api.FPutObject(ctx, c.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return UploadedObject{}, fmt.Errorf("failed to upload '%s' to '%s': %w", localPath, key, err)
	}

	return UploadedObject{
		Key:    info.Key,
		Bucket: c.bucket,
		Size:   info.Size,
	}, nil
}

// ListFiles возвращает все объекты по префиксу.
func (c *Client) ListFiles(ctx context.Context, prefix string) ([]StoredObject, error) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var objects []StoredObject
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	for obj := range c.api.ListObjects(ctx, c.bucket, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if obj.Key == prefix {
			continue
		}
		objects = append(objects, StoredObject{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return objects, nil
}
