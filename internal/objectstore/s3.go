// Package objectstore сохраняет изображения кампаний в S3 или S3-совместимом хранилище
// и возвращает их публичные ссылки.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/magabrotheeeer/community-kitchen/internal/config"
)

// ImagePrefix префикс ключей изображений кампаний.
const ImagePrefix = "campaign-images"

// PutObjectAPI часть клиента S3, нужная для загрузки.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store загружает объекты в один бакет.
type Store struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
}

// New создаёт клиент S3 по настройкам. Учётные данные берутся из стандартной цепочки AWS.
func New(ctx context.Context, cfg config.ObjectStorage) (*Store, error) {
	const op = "objectstore.New"
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return NewWithClient(client, cfg), nil
}

// NewWithClient создаёт Store поверх готового клиента.
func NewWithClient(client PutObjectAPI, cfg config.ObjectStorage) *Store {
	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
	}
}

func publicBase(cfg config.ObjectStorage) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Upload сохраняет объект под ключом key и возвращает его публичную ссылку.
func (s *Store) Upload(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	const op = "objectstore.Upload"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.URL(key), nil
}

// URL публичная ссылка на объект.
func (s *Store) URL(key string) string {
	return s.publicURL + "/" + key
}

// ImageKey строит ключ изображения кампании: campaign-images/{id}/{uuid}.{ext}.
// Расширение берётся из имени файла, по умолчанию jpg.
func ImageKey(campaignID int, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%d/%s.%s", ImagePrefix, campaignID, uuid.NewString(), ext)
}
