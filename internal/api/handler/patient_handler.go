package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davsiu2102/clinical-records-api/internal/api/metrics"
	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
	"github.com/davsiu2102/clinical-records-api/internal/core/ports"
)

// PatientHandler handles HTTP requests for patient operations. All routes
// sit behind the Auth middleware; handlers still verify the resolved user is
// present before touching the service.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Create handles POST /paciente.
//
// @Summary      Create a patient with its allergies and diseases
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPatientRequest  true  "Patient details"
// @Success      201   {object}  patientResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /paciente [post]
func (h *PatientHandler) Create(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req createPatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	detail, err := h.service.CreatePatient(c.Request().Context(), toCreateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSex) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.PatientsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toPatientResponse(detail))
}

// List handles GET /pacientes.
//
// @Summary      List all patients with their allergies and diseases
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   patientResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /pacientes [get]
func (h *PatientHandler) List(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	details, err := h.service.ListPatients(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(details))
}
