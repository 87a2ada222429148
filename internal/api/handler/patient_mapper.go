package handler

import (
	"time"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
	"github.com/davsiu2102/clinical-records-api/internal/core/ports"
)

const birthDateLayout = "2006-01-02"

// --- Request → Service input ---

// toCreateInput assumes req passed validation; the date layout tag guarantees
// the parse cannot fail here.
func toCreateInput(req createPatientRequest) ports.CreatePatientInput {
	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)
	return ports.CreatePatientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		Sex:       domain.Sex(req.Sex),
		Allergies: toConditionInputs(req.Allergies),
		Diseases:  toConditionInputs(req.Diseases),
	}
}

func toConditionInputs(reqs []conditionRequest) []ports.ConditionInput {
	out := make([]ports.ConditionInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ports.ConditionInput{Title: r.Title, Description: r.Description})
	}
	return out
}

// --- Service result → HTTP response ---

func toPatientResponse(d *ports.PatientDetail) patientResponse {
	return patientResponse{
		PatientID: d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		BirthDate: d.BirthDate.Format(birthDateLayout),
		Sex:       string(d.Sex),
		Allergies: toConditionResponses(d.Allergies),
		Diseases:  toConditionResponses(d.Diseases),
	}
}

func toConditionResponses(items []ports.ConditionItem) []conditionResponse {
	out := make([]conditionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, conditionResponse{Title: item.Title, Description: item.Description})
	}
	return out
}

func toListResponse(details []ports.PatientDetail) []patientResponse {
	out := make([]patientResponse, 0, len(details))
	for i := range details {
		out = append(out, toPatientResponse(&details[i]))
	}
	return out
}
