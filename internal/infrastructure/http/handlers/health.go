package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// Liveness handles GET /health. It only confirms the process is serving.
func Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Probe checks one backing service.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// MongoProbe runs the ping command against the credential database.
func MongoProbe(db *mongo.Database) Probe {
	return Probe{Name: "mongodb", Check: func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}}
}

// RedisProbe pings the identity cache.
func RedisProbe(rdb redis.Cmdable) Probe {
	return Probe{Name: "redis", Check: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}

// ReadinessHandler handles GET /health/ready. With no probes the service is
// always ready, which is the case for the in-memory store without a cache.
type ReadinessHandler struct {
	probes []Probe
}

func NewReadinessHandler(probes ...Probe) *ReadinessHandler {
	return &ReadinessHandler{probes: probes}
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                 `json:"status"`
	Dependencies map[string]probeResult `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	resp := readinessResponse{Status: "ok", Dependencies: make(map[string]probeResult, len(h.probes))}
	code := http.StatusOK
	for _, p := range h.probes {
		if err := p.Check(ctx); err != nil {
			resp.Dependencies[p.Name] = probeResult{Status: "unhealthy", Error: err.Error()}
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[p.Name] = probeResult{Status: "ok"}
	}
	return c.JSON(code, resp)
}
