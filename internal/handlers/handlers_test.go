package handlers

import (
	"testing"

	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *rpc.Registry {
	r := rpc.NewRegistry()
	NewPatientHandler(services.NewPatientService(nil, nil)).Register(r)
	NewAppointmentHandler(services.NewAppointmentService(nil)).Register(r)
	NewImmunizationHandler(services.NewImmunizationService(nil)).Register(r)
	NewClinicalNoteHandler(services.NewClinicalNoteService(nil)).Register(r)
	NewExpenseHandler(services.NewExpenseService(nil)).Register(r)
	NewBudgetHandler(services.NewBudgetService(nil)).Register(r)
	NewHealthHandler(nil, nil).Register(r)
	return r
}

func TestRegisteredProcedureTiers(t *testing.T) {
	registry := newRegistry()

	tiers := map[string]rpc.Tier{
		"health.check": rpc.TierPublic,

		"patient.create":            rpc.TierDoctor,
		"patient.list":              rpc.TierProtected,
		"patient.getById":           rpc.TierProtected,
		"patient.update":            rpc.TierDoctor,
		"patient.delete":            rpc.TierAdmin,
		"patient.getMedicalHistory": rpc.TierDoctor,
		"patient.getAllergies":      rpc.TierDoctor,
		"patient.getPediatricStats": rpc.TierDoctor,

		"appointment.create":                  rpc.TierStaff,
		"appointment.list":                    rpc.TierProtected,
		"appointment.getById":                 rpc.TierProtected,
		"appointment.update":                  rpc.TierStaff,
		"appointment.delete":                  rpc.TierStaff,
		"appointment.getToday":                rpc.TierProtected,
		"appointment.getUpcomingVaccinations": rpc.TierDoctor,

		"immunization.create":                 rpc.TierDoctor,
		"immunization.list":                   rpc.TierDoctor,
		"immunization.getById":                rpc.TierDoctor,
		"immunization.update":                 rpc.TierDoctor,
		"immunization.delete":                 rpc.TierDoctor,
		"immunization.getVaccinationSchedule": rpc.TierDoctor,
		"immunization.getOverdueVaccinations": rpc.TierDoctor,
		"immunization.getVaccineCoverage":     rpc.TierDoctor,

		"clinicalNote.create":             rpc.TierDoctor,
		"clinicalNote.list":               rpc.TierDoctor,
		"clinicalNote.getById":            rpc.TierDoctor,
		"clinicalNote.update":             rpc.TierDoctor,
		"clinicalNote.delete":             rpc.TierDoctor,
		"clinicalNote.getGrowthChartData": rpc.TierDoctor,

		"expense.create":              rpc.TierStaff,
		"expense.list":                rpc.TierProtected,
		"expense.getById":             rpc.TierProtected,
		"expense.update":              rpc.TierStaff,
		"expense.delete":              rpc.TierAdmin,
		"expense.getFinancialSummary": rpc.TierAdmin,

		"budget.create":               rpc.TierAdmin,
		"budget.list":                 rpc.TierProtected,
		"budget.getById":              rpc.TierProtected,
		"budget.getByFiscalYear":      rpc.TierProtected,
		"budget.update":               rpc.TierAdmin,
		"budget.delete":               rpc.TierAdmin,
		"budget.getBudgetUtilization": rpc.TierAdmin,
	}

	for name, tier := range tiers {
		proc, ok := registry.Lookup(name)
		require.True(t, ok, "procedure %s not registered", name)
		assert.Equal(t, tier, proc.Tier, "procedure %s", name)
	}
}

func TestUnknownProcedureNotRegistered(t *testing.T) {
	registry := newRegistry()

	_, ok := registry.Lookup("patient.describe")
	assert.False(t, ok)
}
