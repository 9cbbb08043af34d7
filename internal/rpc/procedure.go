package rpc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/smartclin/clinic-api/internal/apperr"
	"github.com/smartclin/clinic-api/internal/metrics"
	"github.com/smartclin/clinic-api/internal/middleware"
	"github.com/smartclin/clinic-api/internal/models"
)

// HandlerFunc executes a procedure after the gate has passed. The input is
// the raw JSON request body; the handler decodes and validates it.
type HandlerFunc func(ctx context.Context, input json.RawMessage) (interface{}, error)

// Procedure is a single named RPC operation with a declared access tier
type Procedure struct {
	Name    string
	Tier    Tier
	Handler HandlerFunc
}

// guard is one authorization predicate. Guards run in order; the first
// non-nil result terminates the call.
type guard func(user *models.User, proc *Procedure) *apperr.Error

// gateChecks is the gate's policy, a visible linear list rather than nested
// middleware. Session presence first, then the role tier.
var gateChecks = []guard{
	requireSession,
	requireTier,
}

func requireSession(user *models.User, proc *Procedure) *apperr.Error {
	if proc.Tier == TierPublic {
		return nil
	}
	if user == nil {
		metrics.AuthzDenials.WithLabelValues("unauthenticated").Inc()
		return apperr.Unauthenticated()
	}
	return nil
}

func requireTier(user *models.User, proc *Procedure) *apperr.Error {
	if proc.Tier == TierPublic {
		return nil
	}
	if !proc.Tier.Allows(user.Role) {
		metrics.AuthzDenials.WithLabelValues("role").Inc()
		return apperr.Forbidden(fmt.Sprintf(
			"access denied for role '%s', required: %s", user.Role, proc.Tier.describeRoles(),
		))
	}
	return nil
}

// Authorize runs the gate for a resolved user and procedure
func Authorize(user *models.User, proc *Procedure) error {
	for _, check := range gateChecks {
		if err := check(user, proc); err != nil {
			return err
		}
	}
	return nil
}

// Registry maps dotted procedure names to procedures
type Registry struct {
	procedures map[string]*Procedure
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{procedures: make(map[string]*Procedure)}
}

// Register adds a procedure. Duplicate names are a programming error.
func (r *Registry) Register(name string, tier Tier, handler HandlerFunc) {
	if _, exists := r.procedures[name]; exists {
		panic("rpc: duplicate procedure " + name)
	}
	r.procedures[name] = &Procedure{Name: name, Tier: tier, Handler: handler}
}

// Lookup returns a registered procedure by name
func (r *Registry) Lookup(name string) (*Procedure, bool) {
	proc, ok := r.procedures[name]
	return proc, ok
}

// ServeHTTP dispatches POST /api/rpc/{procedure} calls: resolve the
// procedure, run the gate, then the handler.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "procedure")

	proc, ok := r.Lookup(name)
	if !ok {
		writeError(w, apperr.NotFound(fmt.Sprintf("unknown procedure '%s'", name)))
		metrics.RPCRequests.WithLabelValues(name, string(apperr.KindNotFound)).Inc()
		return
	}

	start := time.Now()
	user, _ := middleware.UserFrom(req.Context())

	if err := Authorize(user, proc); err != nil {
		r.finish(w, proc, user, nil, err, start)
		return
	}

	input, err := io.ReadAll(req.Body)
	if err != nil {
		r.finish(w, proc, user, nil, apperr.Validation("unreadable request body", err), start)
		return
	}
	if len(input) == 0 {
		input = []byte("{}")
	}

	result, err := proc.Handler(req.Context(), input)
	// Gate denials are counted inside the guards; a FORBIDDEN surfacing from
	// the handler is an ownership check.
	if appErr, ok := apperr.As(err); ok && appErr.Kind == apperr.KindForbidden {
		metrics.AuthzDenials.WithLabelValues("ownership").Inc()
	}
	r.finish(w, proc, user, result, err, start)
}

func (r *Registry) finish(w http.ResponseWriter, proc *Procedure, user *models.User, result interface{}, err error, start time.Time) {
	metrics.RPCDuration.WithLabelValues(proc.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		appErr, ok := apperr.As(err)
		if !ok {
			log.Error().Err(err).Str("procedure", proc.Name).Msg("Procedure failed")
			writeInternalError(w)
			metrics.RPCRequests.WithLabelValues(proc.Name, "internal").Inc()
			return
		}

		event := log.Warn().Str("procedure", proc.Name).Str("code", string(appErr.Kind))
		if user != nil {
			event = event.Str("user_id", user.ID.String()).Str("role", string(user.Role))
		}
		event.Msg(appErr.Message)

		writeError(w, appErr)
		metrics.RPCRequests.WithLabelValues(proc.Name, string(appErr.Kind)).Inc()
		return
	}

	writeResult(w, result)
	metrics.RPCRequests.WithLabelValues(proc.Name, "ok").Inc()
}
