package handlers

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/smartclin/clinic-api/internal/rpc"
	"github.com/smartclin/clinic-api/internal/services"
)

// AppointmentHandler exposes appointment procedures
type AppointmentHandler struct {
	appointments *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// Register adds the appointment procedures to the registry
func (h *AppointmentHandler) Register(r *rpc.Registry) {
	r.Register("appointment.create", rpc.TierStaff, h.create)
	r.Register("appointment.list", rpc.TierProtected, h.list)
	r.Register("appointment.getById", rpc.TierProtected, h.getByID)
	r.Register("appointment.update", rpc.TierStaff, h.update)
	r.Register("appointment.delete", rpc.TierStaff, h.delete)
	r.Register("appointment.getToday", rpc.TierProtected, h.getToday)
	r.Register("appointment.getUpcomingVaccinations", rpc.TierDoctor, h.getUpcomingVaccinations)
}

func (h *AppointmentHandler) create(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.CreateAppointmentInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.appointments.Create(ctx, actorFrom(ctx), in)
}

func (h *AppointmentHandler) list(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.ListAppointmentsInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.appointments.List(ctx, actorFrom(ctx), in)
}

func (h *AppointmentHandler) getByID(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.appointments.GetByID(ctx, actorFrom(ctx), id)
}

func (h *AppointmentHandler) update(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in struct {
		ID uuid.UUID `json:"id"`
		services.UpdateAppointmentInput
	}
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	if in.ID == uuid.Nil {
		return nil, errIDRequired()
	}
	return h.appointments.Update(ctx, actorFrom(ctx), in.ID, in.UpdateAppointmentInput)
}

func (h *AppointmentHandler) delete(ctx context.Context, input json.RawMessage) (interface{}, error) {
	id, err := decodeID(input)
	if err != nil {
		return nil, err
	}
	return h.appointments.Delete(ctx, actorFrom(ctx), id)
}

func (h *AppointmentHandler) getToday(ctx context.Context, input json.RawMessage) (interface{}, error) {
	return h.appointments.GetToday(ctx, actorFrom(ctx))
}

func (h *AppointmentHandler) getUpcomingVaccinations(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in services.UpcomingVaccinationsInput
	if err := decode(input, &in); err != nil {
		return nil, err
	}
	return h.appointments.GetUpcomingVaccinations(ctx, actorFrom(ctx), in)
}
