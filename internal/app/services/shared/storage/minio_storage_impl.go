package storage

import (
	"bytes"
	"careplan-service/internal/app/contracts"
	"careplan-service/internal/pkg/constvars"
	"careplan-service/internal/pkg/exceptions"
	"careplan-service/internal/pkg/utils"
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectPutter is the part of *minio.Client the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioRawContentArchive struct {
	client     ObjectPutter
	bucketName string
	Log        *zap.Logger
}

func NewMinioRawContentArchive(client ObjectPutter, bucketName string, logger *zap.Logger) contracts.RawContentArchive {
	return &minioRawContentArchive{
		client:     client,
		bucketName: bucketName,
		Log:        logger,
	}
}

func (m *minioRawContentArchive) ArchiveRawContent(ctx context.Context, provider, enrollmentID, providerActionID string, capturedAt time.Time, content []byte) (string, error) {
	requestID := utils.GetRequestID(ctx)
	objectName := utils.GenerateRawContentObjectName(provider, enrollmentID, providerActionID, capturedAt)

	_, err := m.client.PutObject(
		ctx,
		m.bucketName,
		objectName,
		bytes.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		m.Log.Error("minioRawContentArchive.ArchiveRawContent error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, m.bucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioPutObject(err, m.bucketName)
	}

	m.Log.Debug("minioRawContentArchive.ArchiveRawContent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, m.bucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return objectName, nil
}
