package httpserver

import (
	"net/http"
	"time"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// RouterConfig holds the dependencies of the admin routes.
type RouterConfig struct {
	// Logger for request and panic logging.
	Logger logger.Logger
	// Metrics serves /metrics. Nil disables the route.
	Metrics http.Handler
	// Stats reports store key counts for /healthz. Optional.
	Stats func() memory.Stats
	// Started is the process start time, reported as uptime.
	Started time.Time
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version"`
	Uptime  string         `json:"uptime"`
	Keys    map[string]int `json:"keys,omitempty"`
}

// NewRouter creates the admin HTTP handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	l := cfg.Logger
	if l == nil {
		l = logger.Default()
	}
	started := cfg.Started
	if started.IsZero() {
		started = time.Now()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := HealthResponse{
			Status:  "ok",
			Version: buildinfo.Get().Version,
			Uptime:  time.Since(started).Truncate(time.Second).String(),
		}
		if cfg.Stats != nil {
			st := cfg.Stats()
			res.Keys = map[string]int{
				"scalar": st.Scalars,
				"hash":   st.Hashes,
				"set":    st.Sets,
			}
		}
		writeJSON(w, http.StatusOK, res)
	})
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return Chain(mux, RequestID(), Recover(l), AccessLog(l))
}
