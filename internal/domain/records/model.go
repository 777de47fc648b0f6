package records

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Patients are created on ingest and
// immutable afterwards; there is no update or delete path.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Note maps to the note table. Notes belong to one patient and are
// append-only; the free text is never mutated after ingest.
type Note struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	DateOfService time.Time `db:"date_of_service" json:"date_of_service"`
	Text          string    `db:"text" json:"text"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
