package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---
//
// Field names follow the established clinical wire contract (Spanish,
// Hungarian-prefixed): sNombre, dFechaNacimiento, eSexo, etc.

type conditionRequest struct {
	Title       string `json:"sTitulo"      validate:"required"`
	Description string `json:"sDescripcion"`
}

type createPatientRequest struct {
	FirstName string             `json:"sNombre"          validate:"required"`
	LastName  string             `json:"sApellido"        validate:"required"`
	BirthDate string             `json:"dFechaNacimiento" validate:"required,datetime=2006-01-02"`
	Sex       string             `json:"eSexo"            validate:"required,oneof=masculino femenino otro"`
	Allergies []conditionRequest `json:"alergias"         validate:"omitempty,dive"`
	Diseases  []conditionRequest `json:"enfermedades"     validate:"omitempty,dive"`
}

// --- Response types ---
//
// Response-only types owned by the transport layer, intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes. Condition lists are always rendered, empty when the
// patient has none — never null.

type conditionResponse struct {
	Title       string `json:"sTitulo"`
	Description string `json:"sDescripcion,omitempty"`
}

type patientResponse struct {
	PatientID int64               `json:"pacienteID"`
	FirstName string              `json:"sNombre"`
	LastName  string              `json:"sApellido"`
	BirthDate string              `json:"dFechaNacimiento"`
	Sex       string              `json:"eSexo"`
	Allergies []conditionResponse `json:"alergias"`
	Diseases  []conditionResponse `json:"enfermedades"`
}
