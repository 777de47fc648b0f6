package pivot

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	mentions MentionRepository
}

func NewService(mentions MentionRepository) *Service {
	return &Service{mentions: mentions}
}

// PatientPivot fetches a patient's fact rows for one dimension and
// aggregates them. A patient with no matching mentions is not an error:
// the result is a well-formed empty matrix.
func (s *Service) PatientPivot(ctx context.Context, patientID uuid.UUID, dim Dimension) (Matrix, error) {
	if !validDimensions[dim] {
		return Matrix{}, &ValidationError{Msg: "invalid dimension type: " + string(dim)}
	}
	mentions, err := s.mentions.FetchMentions(ctx, patientID, dim)
	if err != nil {
		return Matrix{}, &DataAccessError{Op: "fetch mentions", Err: err}
	}
	return BuildMatrix(mentions), nil
}

// IngestResult reports the outcome of a batch ingest. Rejected rows are
// counted per-row; a single bad row does not fail the batch.
type IngestResult struct {
	Inserted int      `json:"inserted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// IngestRows normalizes raw extraction rows and appends the valid ones.
func (s *Service) IngestRows(ctx context.Context, rows []RawRow) (*IngestResult, error) {
	result := &IngestResult{}
	mentions := make([]*Mention, 0, len(rows))
	for _, row := range rows {
		m, err := NormalizeRow(row)
		if err != nil {
			result.Rejected++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		mentions = append(mentions, m)
	}
	if len(mentions) > 0 {
		if err := s.mentions.Append(ctx, mentions); err != nil {
			return nil, &DataAccessError{Op: "append mentions", Err: err}
		}
	}
	result.Inserted = len(mentions)
	return result, nil
}

// MentionCount returns the total number of stored mentions for a patient,
// dated or not.
func (s *Service) MentionCount(ctx context.Context, patientID uuid.UUID) (int, error) {
	total, err := s.mentions.CountByPatient(ctx, patientID)
	if err != nil {
		return 0, &DataAccessError{Op: "count mentions", Err: err}
	}
	return total, nil
}
