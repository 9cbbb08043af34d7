package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/models"
	"github.com/smartclin/clinic-api/internal/rbac"
	"github.com/smartclin/clinic-api/internal/repository"
	"gorm.io/gorm"
)

// In-memory stores backing the service tests. Lookups that miss return
// gorm.ErrRecordNotFound the way the real repositories surface it.

func actor(role rbac.Role) *models.User {
	return &models.User{ID: uuid.New(), Role: role}
}

type fakePatientStore struct {
	patients  map[uuid.UUID]*models.Patient
	history   []models.MedicalHistory
	allergies []models.PatientAllergy
}

func newFakePatientStore() *fakePatientStore {
	return &fakePatientStore{patients: make(map[uuid.UUID]*models.Patient)}
}

func (f *fakePatientStore) Create(_ context.Context, p *models.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientStore) GetByID(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePatientStore) List(_ context.Context, filter repository.PatientFilter) ([]models.Patient, int64, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (f *fakePatientStore) ListMedicalHistory(_ context.Context, patientID uuid.UUID) ([]models.MedicalHistory, error) {
	var out []models.MedicalHistory
	for _, h := range f.history {
		if h.PatientID == patientID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DiagnosisDate.After(out[j].DiagnosisDate) })
	return out, nil
}

func (f *fakePatientStore) ListActiveAllergies(_ context.Context, patientID uuid.UUID) ([]models.PatientAllergy, error) {
	var out []models.PatientAllergy
	for _, a := range f.allergies {
		if a.PatientID == patientID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakePatientStore) Update(_ context.Context, p *models.Patient) error {
	if _, ok := f.patients[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *p
	f.patients[p.ID] = &copied
	return nil
}

func (f *fakePatientStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.patients, id)
	return nil
}

type fakeAppointmentStore struct {
	appointments map[uuid.UUID]*models.Appointment
	lastFilter   repository.AppointmentFilter
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: make(map[uuid.UUID]*models.Appointment)}
}

func (f *fakeAppointmentStore) Create(_ context.Context, a *models.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.appointments[a.ID] = a
	return nil
}

func (f *fakeAppointmentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentStore) List(_ context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	f.lastFilter = filter
	var out []models.Appointment
	for _, a := range f.appointments {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListBetween(_ context.Context, start, end time.Time, doctorID *uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Date.Before(start) || !a.Date.Before(end) {
			continue
		}
		if doctorID != nil && a.DoctorID != *doctorID {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAppointmentStore) ListVaccinationsBetween(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Type != models.AppointmentVaccination {
			continue
		}
		if a.Date.Before(start) || !a.Date.Before(end) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAppointmentStore) Update(_ context.Context, a *models.Appointment) error {
	if _, ok := f.appointments[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *a
	f.appointments[a.ID] = &copied
	return nil
}

func (f *fakeAppointmentStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.appointments, id)
	return nil
}

type fakeNoteStore struct {
	notes      map[uuid.UUID]*models.ClinicalNote
	lastFilter repository.ClinicalNoteFilter
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[uuid.UUID]*models.ClinicalNote)}
}

func (f *fakeNoteStore) Create(_ context.Context, n *models.ClinicalNote) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	f.notes[n.ID] = n
	return nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id uuid.UUID) (*models.ClinicalNote, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNoteStore) List(_ context.Context, filter repository.ClinicalNoteFilter) ([]models.ClinicalNote, error) {
	f.lastFilter = filter
	var out []models.ClinicalNote
	for _, n := range f.notes {
		if filter.PatientID != nil && n.PatientID != *filter.PatientID {
			continue
		}
		if filter.AuthorID != nil && n.AuthorID != *filter.AuthorID {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeNoteStore) ListByPatient(_ context.Context, patientID uuid.UUID, limit int, newestFirst bool) ([]models.ClinicalNote, error) {
	var out []models.ClinicalNote
	for _, n := range f.notes {
		if n.PatientID == patientID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNoteStore) Update(_ context.Context, n *models.ClinicalNote) error {
	if _, ok := f.notes[n.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *n
	f.notes[n.ID] = &copied
	return nil
}

func (f *fakeNoteStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.notes, id)
	return nil
}

type fakeImmunizationStore struct {
	records map[uuid.UUID]*models.Immunization
}

func newFakeImmunizationStore() *fakeImmunizationStore {
	return &fakeImmunizationStore{records: make(map[uuid.UUID]*models.Immunization)}
}

func (f *fakeImmunizationStore) Create(_ context.Context, i *models.Immunization) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	f.records[i.ID] = i
	return nil
}

func (f *fakeImmunizationStore) GetByID(_ context.Context, id uuid.UUID) (*models.Immunization, error) {
	i, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *i
	return &copied, nil
}

func (f *fakeImmunizationStore) List(_ context.Context, filter repository.ImmunizationFilter) ([]models.Immunization, error) {
	var out []models.Immunization
	for _, i := range f.records {
		if filter.PatientID != nil && i.PatientID != *filter.PatientID {
			continue
		}
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

func (f *fakeImmunizationStore) ListByPatient(_ context.Context, patientID uuid.UUID) ([]models.Immunization, error) {
	var out []models.Immunization
	for _, i := range f.records {
		if i.PatientID == patientID {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AdministrationDate.Before(out[j].AdministrationDate)
	})
	return out, nil
}

func (f *fakeImmunizationStore) ListOverdue(_ context.Context, asOf time.Time, patientID *uuid.UUID) ([]models.Immunization, error) {
	var out []models.Immunization
	for _, i := range f.records {
		if i.Status != models.ImmunizationScheduled {
			continue
		}
		if i.NextDueDate == nil || i.NextDueDate.After(asOf) {
			continue
		}
		if patientID != nil && i.PatientID != *patientID {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

func (f *fakeImmunizationStore) ListVaccineCoverage(_ context.Context, vaccineName string) ([]models.VaccineCoverage, error) {
	counts := make(map[string]int64)
	for _, i := range f.records {
		if i.Status != models.ImmunizationAdministered {
			continue
		}
		if vaccineName != "" && i.VaccineName != vaccineName {
			continue
		}
		counts[i.VaccineName]++
	}
	var out []models.VaccineCoverage
	for name, count := range counts {
		out = append(out, models.VaccineCoverage{VaccineName: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VaccineName < out[j].VaccineName })
	return out, nil
}

func (f *fakeImmunizationStore) Update(_ context.Context, i *models.Immunization) error {
	if _, ok := f.records[i.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *i
	f.records[i.ID] = &copied
	return nil
}

func (f *fakeImmunizationStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.records, id)
	return nil
}

type fakeExpenseStore struct {
	expenses map[uuid.UUID]*models.Expense
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[uuid.UUID]*models.Expense)}
}

func (f *fakeExpenseStore) Create(_ context.Context, e *models.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.expenses[e.ID] = e
	return nil
}

func (f *fakeExpenseStore) GetByID(_ context.Context, id uuid.UUID) (*models.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeExpenseStore) List(_ context.Context, filter repository.ExpenseFilter) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.expenses {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeExpenseStore) ListCompletedBetween(_ context.Context, start, end time.Time) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.expenses {
		if e.Status != models.ExpenseCompleted {
			continue
		}
		if e.TransactionDate.Before(start) || e.TransactionDate.After(end) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeExpenseStore) Update(_ context.Context, e *models.Expense) error {
	if _, ok := f.expenses[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *e
	f.expenses[e.ID] = &copied
	return nil
}

func (f *fakeExpenseStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.expenses, id)
	return nil
}

type fakeBudgetStore struct {
	budgets map[uuid.UUID]*models.Budget
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{budgets: make(map[uuid.UUID]*models.Budget)}
}

func (f *fakeBudgetStore) Create(_ context.Context, b *models.Budget) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.budgets[b.ID] = b
	return nil
}

func (f *fakeBudgetStore) GetByID(_ context.Context, id uuid.UUID) (*models.Budget, error) {
	b, ok := f.budgets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBudgetStore) List(_ context.Context, filter repository.BudgetFilter) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range f.budgets {
		if filter.FiscalYear != 0 && b.FiscalYear != filter.FiscalYear {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBudgetStore) ListByFiscalYear(_ context.Context, fiscalYear int) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range f.budgets {
		if b.FiscalYear == fiscalYear {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (f *fakeBudgetStore) Update(_ context.Context, b *models.Budget) error {
	if _, ok := f.budgets[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *b
	f.budgets[b.ID] = &copied
	return nil
}

func (f *fakeBudgetStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.budgets, id)
	return nil
}
