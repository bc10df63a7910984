package repository

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"file-sharing-server/config"
	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
)

// S3BlobStore : содержимое файлов в S3 (или MinIO при local: true)
type S3BlobStore struct {
	client   *s3.Client
	bucket   string
	psClient *s3.PresignClient
}

func NewS3BlobStore(ctx context.Context, cfg *config.S3Config) (*S3BlobStore, error) {
	var client *s3.Client

	if cfg.Local {
		client = s3.New(s3.Options{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				"minioadmin",
				"minioadmin",
				"",
			),
			BaseEndpoint: aws.String(cfg.Endpoint),
			UsePathStyle: true,
		})

		if err := createBucketIfNotExists(ctx, client, cfg.Bucket); err != nil {
			return nil, util.LogError("[BlobStore] ошибка создания бакета", err)
		}
	} else {
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, util.LogError("[BlobStore] ошибка загрузки AWS config", err)
		}
		client = s3.NewFromConfig(awsCfg)
	}
	cfg.Client = client

	return &S3BlobStore{
		client:   client,
		psClient: s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
	}, nil
}

func createBucketIfNotExists(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return nil
	}

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return err
	}

	util.Logger().Info("[BlobStore] бакет создан", zap.String("bucket", bucket))
	return nil
}

// Put : загрузка содержимого под ключом key, существующий объект перезаписывается
func (s *S3BlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return util.LogError("[BlobStore] не удалось загрузить объект", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	return nil
}

func (s *S3BlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return util.LogError("[BlobStore] не удалось удалить объект", fmt.Errorf("%w: %w", model.ErrDependencyFailure, err))
	}
	return nil
}

// PresignGet : pre-signed URL для GET со сроком ttl
func (s *S3BlobStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.psClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", util.LogError("[BlobStore] не удалось сгенерировать presigned GET URL", err)
	}

	return req.URL, nil
}
