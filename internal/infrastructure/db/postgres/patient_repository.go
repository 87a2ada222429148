package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
)

// PatientRepository persists patients with their allergies and diseases.
type PatientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// Create stores the patient aggregate in a single transaction: the patient
// row, one row per allergy and disease, and the link rows. Any failure rolls
// everything back.
func (r *PatientRepository) Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := *patient
	err = tx.QueryRowContext(ctx, `
		INSERT INTO pacientes (nombre, apellido, fecha_nacimiento, sexo)
		VALUES ($1, $2, $3, $4)
		RETURNING paciente_id`,
		patient.FirstName, patient.LastName, patient.BirthDate, string(patient.Sex),
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}

	created.Allergies = make([]domain.Allergy, 0, len(patient.Allergies))
	for _, a := range patient.Allergies {
		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO alergias (titulo, descripcion)
			VALUES ($1, NULLIF($2, ''))
			RETURNING alergia_id`,
			a.Title, a.Description,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert allergy: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO paciente_alergia (paciente_id, alergia_id) VALUES ($1, $2)`,
			created.ID, id,
		)
		if err != nil {
			return nil, fmt.Errorf("link allergy: %w", err)
		}
		created.Allergies = append(created.Allergies, domain.Allergy{ID: id, Title: a.Title, Description: a.Description})
	}

	created.Diseases = make([]domain.Disease, 0, len(patient.Diseases))
	for _, d := range patient.Diseases {
		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO enfermedades (titulo, descripcion)
			VALUES ($1, NULLIF($2, ''))
			RETURNING enfermedad_id`,
			d.Title, d.Description,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert disease: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO paciente_enfermedad (paciente_id, enfermedad_id) VALUES ($1, $2)`,
			created.ID, id,
		)
		if err != nil {
			return nil, fmt.Errorf("link disease: %w", err)
		}
		created.Diseases = append(created.Diseases, domain.Disease{ID: id, Title: d.Title, Description: d.Description})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit patient: %w", err)
	}

	return &created, nil
}

// List returns every patient with its related allergies and diseases.
func (r *PatientRepository) List(ctx context.Context) ([]domain.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT paciente_id, nombre, apellido, fecha_nacimiento, sexo
		FROM pacientes
		ORDER BY paciente_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	patients := make([]domain.Patient, 0)
	for rows.Next() {
		var p domain.Patient
		var sex string
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.BirthDate, &sex); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		p.Sex = domain.Sex(sex)
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}

	for i := range patients {
		if patients[i].Allergies, err = r.allergiesFor(ctx, patients[i].ID); err != nil {
			return nil, err
		}
		if patients[i].Diseases, err = r.diseasesFor(ctx, patients[i].ID); err != nil {
			return nil, err
		}
	}

	return patients, nil
}

func (r *PatientRepository) allergiesFor(ctx context.Context, patientID int64) ([]domain.Allergy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.alergia_id, a.titulo, COALESCE(a.descripcion, '')
		FROM alergias a
		JOIN paciente_alergia pa ON pa.alergia_id = a.alergia_id
		WHERE pa.paciente_id = $1
		ORDER BY a.alergia_id`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list allergies: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Allergy, 0)
	for rows.Next() {
		var a domain.Allergy
		if err := rows.Scan(&a.ID, &a.Title, &a.Description); err != nil {
			return nil, fmt.Errorf("scan allergy: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PatientRepository) diseasesFor(ctx context.Context, patientID int64) ([]domain.Disease, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.enfermedad_id, e.titulo, COALESCE(e.descripcion, '')
		FROM enfermedades e
		JOIN paciente_enfermedad pe ON pe.enfermedad_id = e.enfermedad_id
		WHERE pe.paciente_id = $1
		ORDER BY e.enfermedad_id`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list diseases: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Disease, 0)
	for rows.Next() {
		var d domain.Disease
		if err := rows.Scan(&d.ID, &d.Title, &d.Description); err != nil {
			return nil, fmt.Errorf("scan disease: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
