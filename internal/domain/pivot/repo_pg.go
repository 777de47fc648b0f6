package pivot

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type mentionRepoPG struct{ pool *pgxpool.Pool }

func NewMentionRepoPG(pool *pgxpool.Pool) MentionRepository {
	return &mentionRepoPG{pool: pool}
}

const mentionCols = `id, patient_id, note_id, dimension_type, value, date_of_service, created_at`

func scanMention(row pgx.Row) (Mention, error) {
	var m Mention
	err := row.Scan(&m.ID, &m.PatientID, &m.NoteID, &m.DimensionType, &m.Value,
		&m.DateOfService, &m.CreatedAt)
	return m, err
}

// FetchMentions orders by date of service (nulls last) then value so that
// matrix row order is deterministic for a given data set.
func (r *mentionRepoPG) FetchMentions(ctx context.Context, patientID uuid.UUID, dim Dimension) ([]Mention, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+mentionCols+`
		FROM extracted_mention
		WHERE patient_id = $1 AND dimension_type = $2
		ORDER BY date_of_service ASC NULLS LAST, value ASC, id ASC`,
		patientID, string(dim))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentions []Mention
	for rows.Next() {
		m, err := scanMention(rows)
		if err != nil {
			return nil, err
		}
		mentions = append(mentions, m)
	}
	return mentions, rows.Err()
}

// Append inserts a batch of mentions in one round trip. Mentions are
// append-only; there is no update path.
func (r *mentionRepoPG) Append(ctx context.Context, mentions []*Mention) error {
	batch := &pgx.Batch{}
	for _, m := range mentions {
		m.ID = uuid.New()
		batch.Queue(`INSERT INTO extracted_mention
			(id, patient_id, note_id, dimension_type, value, date_of_service)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, m.PatientID, m.NoteID, string(m.DimensionType), m.Value, m.DateOfService)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range mentions {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *mentionRepoPG) CountByPatient(ctx context.Context, patientID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM extracted_mention WHERE patient_id = $1`, patientID).Scan(&total)
	return total, err
}
