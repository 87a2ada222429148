package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davsiu2102/clinical-records-api/internal/api/middleware"
	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
	"github.com/davsiu2102/clinical-records-api/internal/core/ports"
)

type stubPatientService struct {
	createFn func(ctx context.Context, input ports.CreatePatientInput) (*ports.PatientDetail, error)
	listFn   func(ctx context.Context) ([]ports.PatientDetail, error)
}

func (s *stubPatientService) CreatePatient(ctx context.Context, input ports.CreatePatientInput) (*ports.PatientDetail, error) {
	return s.createFn(ctx, input)
}

func (s *stubPatientService) ListPatients(ctx context.Context) ([]ports.PatientDetail, error) {
	return s.listFn(ctx)
}

func authenticatedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.UserContextKey, &domain.User{ID: 1, Username: "alice", Active: true})
	return c
}

func TestPatientHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubPatientService{
		createFn: func(ctx context.Context, input ports.CreatePatientInput) (*ports.PatientDetail, error) {
			if input.FirstName != "Ana" || input.Sex != domain.SexFemale {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.BirthDate != time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC) {
				t.Fatalf("unexpected birth date: %s", input.BirthDate)
			}
			if len(input.Allergies) != 1 || input.Allergies[0].Title != "polen" {
				t.Fatalf("unexpected allergies: %+v", input.Allergies)
			}
			return &ports.PatientDetail{
				ID:        7,
				FirstName: input.FirstName,
				LastName:  input.LastName,
				BirthDate: input.BirthDate,
				Sex:       input.Sex,
				Allergies: []ports.ConditionItem{{Title: "polen", Description: "estacional"}},
				Diseases:  []ports.ConditionItem{},
			}, nil
		},
	}
	handler := NewPatientHandler(stub)

	body := strings.NewReader(`{
		"sNombre": "Ana",
		"sApellido": "García",
		"dFechaNacimiento": "1990-05-17",
		"eSexo": "femenino",
		"alergias": [{"sTitulo": "polen", "sDescripcion": "estacional"}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/paciente", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authenticatedContext(e, req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["pacienteID"] != float64(7) || resp["sNombre"] != "Ana" || resp["dFechaNacimiento"] != "1990-05-17" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	allergies, ok := resp["alergias"].([]any)
	if !ok || len(allergies) != 1 {
		t.Fatalf("expected one allergy, got %+v", resp["alergias"])
	}
	diseases, ok := resp["enfermedades"].([]any)
	if !ok || len(diseases) != 0 {
		t.Fatalf("enfermedades must be an empty list, not null: %+v", resp["enfermedades"])
	}
}

func TestPatientHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubPatientService{
		createFn: func(ctx context.Context, input ports.CreatePatientInput) (*ports.PatientDetail, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPatientHandler(stub)

	for _, body := range []string{
		`{"sApellido":"García","dFechaNacimiento":"1990-05-17","eSexo":"femenino"}`,
		`{"sNombre":"Ana","sApellido":"García","dFechaNacimiento":"17/05/1990","eSexo":"femenino"}`,
		`{"sNombre":"Ana","sApellido":"García","dFechaNacimiento":"1990-05-17","eSexo":"unknown"}`,
		`{"sNombre":"Ana","sApellido":"García","dFechaNacimiento":"1990-05-17","eSexo":"femenino","alergias":[{"sDescripcion":"sin titulo"}]}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/paciente", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := authenticatedContext(e, req, rec)

		_ = handler.Create(c)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestPatientHandler_Create_NoUserInContext(t *testing.T) {
	e := newTestEcho()
	stub := &stubPatientService{
		createFn: func(ctx context.Context, input ports.CreatePatientInput) (*ports.PatientDetail, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPatientHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/paciente", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPatientHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubPatientService{
		listFn: func(ctx context.Context) ([]ports.PatientDetail, error) {
			return []ports.PatientDetail{
				{
					ID:        1,
					FirstName: "Ana",
					LastName:  "García",
					BirthDate: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
					Sex:       domain.SexFemale,
					Allergies: []ports.ConditionItem{},
					Diseases:  []ports.ConditionItem{{Title: "asma"}},
				},
			}, nil
		},
	}
	handler := NewPatientHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/pacientes", nil)
	rec := httptest.NewRecorder()
	c := authenticatedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["sNombre"] != "Ana" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if allergies, ok := resp[0]["alergias"].([]any); !ok || len(allergies) != 0 {
		t.Fatalf("alergias must be an empty list, not null: %+v", resp[0]["alergias"])
	}
}

func TestPatientHandler_List_EmptyIsList(t *testing.T) {
	e := newTestEcho()
	stub := &stubPatientService{
		listFn: func(ctx context.Context) ([]ports.PatientDetail, error) {
			return []ports.PatientDetail{}, nil
		},
	}
	handler := NewPatientHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/pacientes", nil)
	rec := httptest.NewRecorder()
	c := authenticatedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", rec.Body.String())
	}
}
