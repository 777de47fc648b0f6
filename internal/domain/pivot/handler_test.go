package pivot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockMentionRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func pivotRequest(e *echo.Echo, dimType, patientID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type", "patientId")
	c.SetParamValues(dimType, patientID)
	return c, rec
}

func TestHandler_GetPivot(t *testing.T) {
	h, repo, e := newTestHandler()
	pid := uuid.New()
	repo.mentions = []Mention{
		{PatientID: pid, DimensionType: DimensionSymptom, Value: "Anxiety", DateOfService: day("2024-01-01")},
		{PatientID: pid, DimensionType: DimensionSymptom, Value: "Anxiety", DateOfService: day("2024-01-01")},
		{PatientID: pid, DimensionType: DimensionSymptom, Value: "Insomnia", DateOfService: day("2024-01-02")},
	}

	c, rec := pivotRequest(e, "symptom", pid.String())
	if err := h.GetPivot(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Data["Anxiety"]["2024-01-01"] != 2 || resp.MaxValue != 2 {
		t.Errorf("response = %+v", resp)
	}
	// Chart consumers parse cells unconditionally as numbers; a quoted
	// count would silently render zero-size bubbles.
	if strings.Contains(rec.Body.String(), `"2024-01-01":"`) {
		t.Errorf("cell values must be JSON numbers, got %s", rec.Body.String())
	}
}

func TestHandler_GetPivot_EmptyPatient(t *testing.T) {
	h, _, e := newTestHandler()
	c, rec := pivotRequest(e, "symptom", uuid.New().String())
	if err := h.GetPivot(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, empty result is not a 404", rec.Code)
	}

	body := rec.Body.String()
	// Exact empty contract: arrays and object present, never null.
	for _, want := range []string{`"rows":[]`, `"columns":[]`, `"data":{}`, `"maxValue":1`} {
		if !strings.Contains(body, want) {
			t.Errorf("body %s missing %s", body, want)
		}
	}
}

func TestHandler_GetPivot_InvalidDimension(t *testing.T) {
	h, _, e := newTestHandler()
	c, _ := pivotRequest(e, "mood", uuid.New().String())
	err := h.GetPivot(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetPivot_InvalidPatientID(t *testing.T) {
	h, _, e := newTestHandler()
	c, _ := pivotRequest(e, "symptom", "not-a-uuid")
	err := h.GetPivot(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetPivot_StorageFailure(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.fetchErr = errClosed
	c, _ := pivotRequest(e, "symptom", uuid.New().String())
	err := h.GetPivot(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
}

func TestHandler_GetPivot_TopFilter(t *testing.T) {
	h, repo, e := newTestHandler()
	pid := uuid.New()
	repo.mentions = []Mention{
		{PatientID: pid, DimensionType: DimensionSymptom, Value: "Anxiety", DateOfService: day("2024-01-01")},
		{PatientID: pid, DimensionType: DimensionSymptom, Value: "Anxiety", DateOfService: day("2024-01-02")},
		{PatientID: pid, DimensionType: DimensionSymptom, Value: "Insomnia", DateOfService: day("2024-01-01")},
	}

	req := httptest.NewRequest(http.MethodGet, "/?top=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type", "patientId")
	c.SetParamValues("symptom", pid.String())

	if err := h.GetPivot(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Rows) != 1 || resp.Rows[0] != "Anxiety" {
		t.Errorf("rows = %v", resp.Rows)
	}
}

func TestHandler_IngestMentions(t *testing.T) {
	h, repo, e := newTestHandler()
	pid, nid := uuid.New(), uuid.New()
	body := `{"rows":[{"patient_id":"` + pid.String() + `","note_id":"` + nid.String() +
		`","dimension_type":"symptom","symptom_segment":"Anxiety","date_of_service":"2024-01-01"}]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.IngestMentions(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if len(repo.mentions) != 1 {
		t.Errorf("stored %d mentions", len(repo.mentions))
	}
}

func TestHandler_IngestMentions_EmptyBody(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rows":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.IngestMentions(c); err == nil {
		t.Error("expected error for empty rows")
	}
}

func TestHandler_GetMentionCount(t *testing.T) {
	h, repo, e := newTestHandler()
	pid := uuid.New()
	repo.mentions = []Mention{{PatientID: pid, DimensionType: DimensionSymptom, Value: "Anxiety"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(pid.String())

	if err := h.GetMentionCount(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
