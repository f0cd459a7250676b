package oss

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Joydas46/VideoTube-Twitter/config"
	"github.com/Joydas46/VideoTube-Twitter/pkg/utils"
)

const (
	imageBucket = "picture"
	videoBucket = "video"
	region      = "us-east-1"
)

type MinioStorage struct {
	client  *minio.Client
	baseURL string
}

func InitMinio(conf config.Minio) (*MinioStorage, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "create minio client")
	}
	logrus.Infof("minio connected: %s", conf.Endpoint)
	return &MinioStorage{client: client, baseURL: strings.TrimRight(conf.PublicBaseURL, "/")}, nil
}

func (s *MinioStorage) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.WithMessagef(err, "check bucket %s", bucket)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return errors.WithMessagef(err, "create bucket %s", bucket)
		}
	}
	return nil
}

func (s *MinioStorage) PutImage(ctx context.Context, localPath, contentType string) (*Object, error) {
	var suffix string
	switch contentType {
	case "image/jpeg", "image/jpg":
		suffix = ".jpg"
	case "image/png":
		suffix = ".png"
	default:
		return nil, errors.Errorf("unsupported image format: %s", contentType)
	}

	if err := s.ensureBucket(ctx, imageBucket); err != nil {
		return nil, err
	}

	// uuid key: a re-upload must never overwrite a blob another record still
	// references
	objectName := "img/" + uuid.NewString() + suffix
	if _, err := s.client.FPutObject(ctx, imageBucket, objectName, localPath,
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, errors.WithMessage(err, "upload image")
	}

	return &Object{ID: objectName, URL: s.objectURL(imageBucket, objectName)}, nil
}

func (s *MinioStorage) PutVideo(ctx context.Context, localPath string) (*Object, error) {
	if err := s.ensureBucket(ctx, videoBucket); err != nil {
		return nil, err
	}

	duration, err := utils.ProbeDuration(localPath)
	if err != nil {
		return nil, err
	}

	objectName := "vid/" + uuid.NewString() + ".mp4"
	if _, err := s.client.FPutObject(ctx, videoBucket, objectName, localPath,
		minio.PutObjectOptions{ContentType: "video/mp4"}); err != nil {
		return nil, errors.WithMessage(err, "upload video")
	}

	return &Object{
		ID:       objectName,
		URL:      s.objectURL(videoBucket, objectName),
		Duration: duration,
	}, nil
}

func (s *MinioStorage) Remove(ctx context.Context, id string, kind Kind) error {
	bucket := imageBucket
	if kind == KindVideo {
		bucket = videoBucket
	}
	if err := s.client.RemoveObject(ctx, bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return errors.WithMessagef(err, "remove %s from %s", id, bucket)
	}
	return nil
}

func (s *MinioStorage) objectURL(bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, path.Clean(objectName))
}
