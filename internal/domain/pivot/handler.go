package pivot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ibpm/ibpm/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the pivot grid endpoint consumed by the chart views
// and the ingest endpoint called by the extraction pipeline.
func (h *Handler) RegisterRoutes(pivotGroup, api *echo.Group) {
	pivotGroup.GET("/:type/:patientId", h.GetPivot)

	writeGroup := api.Group("", auth.RequireRole("admin", "extractor"))
	writeGroup.POST("/mentions", h.IngestMentions)
	api.GET("/patients/:id/mention-count", h.GetMentionCount,
		auth.RequireRole("admin", "physician", "analyst"))
}

// GetPivot serves GET /api/pivot/:type/:patientId. An optional top=N query
// parameter restricts the grid to the N rows with the highest totals.
func (h *Handler) GetPivot(c echo.Context) error {
	dim, err := ParseDimension(c.Param("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	matrix, err := h.svc.PatientPivot(c.Request().Context(), patientID, dim)
	if err != nil {
		return httpError(err)
	}

	if top, _ := strconv.Atoi(c.QueryParam("top")); top > 0 {
		matrix = matrix.TopRows(top)
	}
	return c.JSON(http.StatusOK, matrix.Response())
}

func (h *Handler) IngestMentions(c echo.Context) error {
	var body struct {
		Rows []RawRow `json:"rows"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(body.Rows) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "rows is required")
	}
	result, err := h.svc.IngestRows(c.Request().Context(), body.Rows)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetMentionCount(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	total, err := h.svc.MentionCount(c.Request().Context(), patientID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]int{"total": total})
}

// httpError translates the service error taxonomy to status codes. The
// boundary does no recovery of its own: no fallback data, no stale cache.
func httpError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	}
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return echo.NewHTTPError(http.StatusInternalServerError, dae.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
