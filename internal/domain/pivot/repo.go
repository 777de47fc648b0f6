package pivot

import (
	"context"

	"github.com/google/uuid"
)

// MentionRepository is the read path for fact rows plus the append-only
// write path used by ingest. Reads are single queries with no retry: a
// failure propagates to the caller as-is.
type MentionRepository interface {
	FetchMentions(ctx context.Context, patientID uuid.UUID, dim Dimension) ([]Mention, error)
	Append(ctx context.Context, mentions []*Mention) error
	CountByPatient(ctx context.Context, patientID uuid.UUID) (int, error)
}
