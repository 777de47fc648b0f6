package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	patients PatientRepository
	notes    NoteRepository
}

func NewService(patients PatientRepository, notes NoteRepository) *Service {
	return &Service{patients: patients, notes: notes}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) CreateNote(ctx context.Context, n *Note) error {
	if n.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(n.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if n.DateOfService.IsZero() {
		return fmt.Errorf("date_of_service is required")
	}
	// Notes belong to exactly one patient; reject unknown patients rather
	// than relying on the FK error.
	if _, err := s.patients.GetByID(ctx, n.PatientID); err != nil {
		return fmt.Errorf("unknown patient: %s", n.PatientID)
	}
	return s.notes.Create(ctx, n)
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) ListNotesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	return s.notes.ListByPatient(ctx, patientID, limit, offset)
}
