package domain

import (
	"errors"
	"time"
)

// Sex is the reported sex of a patient.
type Sex string

const (
	SexMale   Sex = "masculino"
	SexFemale Sex = "femenino"
	SexOther  Sex = "otro"
)

var ErrInvalidSex = errors.New("invalid sex value")

// Valid reports whether s is one of the accepted values.
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

// Allergy is a condition a patient reacts to. Description is optional.
type Allergy struct {
	ID          int64
	Title       string
	Description string
}

// Disease is a diagnosed illness. Description is optional.
type Disease struct {
	ID          int64
	Title       string
	Description string
}

// Patient is the aggregate root: the patient row plus its linked allergies
// and diseases. Both slices are never nil once loaded; absence is an empty
// list, not a null.
type Patient struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
	Sex       Sex
	Allergies []Allergy
	Diseases  []Disease
}
