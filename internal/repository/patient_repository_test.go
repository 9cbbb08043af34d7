package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPatientGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "medical_record_number", "first_name", "last_name"}).
			AddRow(id, "MRN-000101", "Ada", "Mensah"))

	patient, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, patient.ID)
	assert.Equal(t, "MRN-000101", patient.MedicalRecordNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestPatientListCountsAndFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE .*first_name ILIKE .+ ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).
			AddRow(uuid.New(), "Ada").
			AddRow(uuid.New(), "Adwoa"))

	active := true
	patients, total, err := repo.List(context.Background(), PatientFilter{
		Search:   "Ad",
		IsActive: &active,
		Page:     1,
		Limit:    20,
	})
	require.NoError(t, err)
	assert.Len(t, patients, 2)
	assert.Equal(t, int64(2), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectExec(`UPDATE "patients" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Patient{
		ID:                  uuid.New(),
		MedicalRecordNumber: "MRN-000101",
		FirstName:           "Ada",
		LastName:            "Mensah",
		Gender:              models.GenderFemale,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectExec(`DELETE FROM "patients" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientListMedicalHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)
	patientID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "medical_history" WHERE patient_id = .+ ORDER BY diagnosis_date DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "condition", "status"}).
			AddRow(uuid.New(), patientID, "otitis media", "resolved").
			AddRow(uuid.New(), patientID, "asthma", "chronic"))

	history, err := repo.ListMedicalHistory(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "otitis media", history[0].Condition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientListActiveAllergies(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)
	patientID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patient_allergies" WHERE patient_id = .+ AND is_active =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "allergen", "is_active"}).
			AddRow(uuid.New(), patientID, "penicillin", true))

	allergies, err := repo.ListActiveAllergies(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, allergies, 1)
	assert.Equal(t, "penicillin", allergies[0].Allergen)
	assert.NoError(t, mock.ExpectationsWereMet())
}
