package utils

import (
	"careplan-service/internal/pkg/constvars"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateRawContentObjectName(provider, enrollmentID, providerActionID string, capturedAt time.Time) string {
	timestamp := capturedAt.UTC().Format("20060102_150405.000000000")
	return fmt.Sprintf(constvars.MinioRawContentObjectNameFormat, provider, enrollmentID, providerActionID, timestamp)
}
