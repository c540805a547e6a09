package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"photofeed/internal/config"
)

// sniffLen is how many leading bytes are read to detect the content type.
const sniffLen = 3072

var ErrUnsupportedType = errors.New("unsupported image type")

type Storage interface {
	UploadImage(ctx context.Context, ownerID string, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
	GetImageURL(ctx context.Context, objectName string) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

// NewMinIOClient connects to the object store and creates the bucket if needed.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}
		log.Info().Str("bucket", cfg.BucketName).Msg("minio: bucket created")
	}

	return &MinIOClient{client: client, config: cfg}, nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, ownerID string, fileName string, file io.Reader, size int64) (string, string, error) {
	mt, body, err := sniff(file)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	objectName := objectPath(ownerID, now, mt.Extension())

	_, err = m.client.PutObject(ctx, m.config.BucketName, objectName, body, size,
		minio.PutObjectOptions{
			ContentType: mt.String(),
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"owner-id":          ownerID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("upload to minio: %w", err)
	}

	imageURL, err := m.GetImageURL(ctx, objectName)
	if err != nil {
		return "", "", err
	}

	return objectName, imageURL, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}

// GetImageURL returns a public URL when one is configured and a presigned
// one otherwise.
func (m *MinIOClient) GetImageURL(ctx context.Context, objectName string) (string, error) {
	if m.config.PublicURL != "" {
		return publicURL(m.config.PublicURL, m.config.BucketName, objectName), nil
	}

	u, err := m.client.PresignedGetObject(ctx, m.config.BucketName, objectName, m.config.URLExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectName, err)
	}
	return u.String(), nil
}

// sniff detects the image type from the head of r and returns a reader that
// still yields the full content.
func sniff(r io.Reader) (*mimetype.MIME, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	return mt, io.MultiReader(bytes.NewReader(head), r), nil
}

func objectPath(ownerID string, now time.Time, ext string) string {
	if ownerID == "" {
		ownerID = "anonymous"
	}
	return fmt.Sprintf("photos/%s/%d/%02d/%s%s",
		ownerID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)
}

func publicURL(base, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), bucket, objectName)
}
