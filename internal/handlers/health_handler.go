package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/smartclin/clinic-api/internal/cache"
	"github.com/smartclin/clinic-api/internal/rpc"
	"gorm.io/gorm"
)

// HealthHandler reports service health over both the RPC surface and the
// plain HTTP probes
type HealthHandler struct {
	db       *gorm.DB
	sessions cache.Cache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, sessions cache.Cache) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

// Register adds the health procedure to the registry
func (h *HealthHandler) Register(r *rpc.Registry) {
	r.Register("health.check", rpc.TierPublic, h.check)
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (h *HealthHandler) probe(ctx context.Context) healthResponse {
	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		response.Services["database"] = "unhealthy"
		response.Status = "degraded"
	} else {
		response.Services["database"] = "healthy"
	}

	if _, err := h.sessions.Exists(ctx, "health:probe"); err != nil {
		response.Services["session_store"] = "unhealthy"
		response.Status = "degraded"
	} else {
		response.Services["session_store"] = "healthy"
	}

	return response
}

func (h *HealthHandler) check(ctx context.Context, input json.RawMessage) (interface{}, error) {
	return h.probe(ctx), nil
}

// Health serves GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := h.probe(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if response.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(response)
}

// Ready serves GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
