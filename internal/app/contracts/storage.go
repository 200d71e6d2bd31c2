package contracts

import (
	"context"
	"time"
)

// RawContentArchive keeps a copy of provider payloads for audit.
type RawContentArchive interface {
	ArchiveRawContent(ctx context.Context, provider, enrollmentID, providerActionID string, capturedAt time.Time, content []byte) (string, error)
}
