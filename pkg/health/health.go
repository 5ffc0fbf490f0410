package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker reports the health of one dependency of the process.
type Checker func(ctx context.Context) error

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the JSON body returned by the health endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the result of a single health check.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

type namedChecker struct {
	name  string
	check Checker
}

// Handler serves liveness and readiness endpoints.
type Handler struct {
	mu       sync.RWMutex
	checkers []namedChecker
	timeout  time.Duration
}

// NewHandler creates a health handler whose readiness probe gives all
// checks timeout to finish.
func NewHandler(timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{timeout: timeout}
}

// Register adds a named checker; registering a name twice replaces it.
func (h *Handler) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.checkers {
		if h.checkers[i].name == name {
			h.checkers[i].check = checker
			return
		}
	}
	h.checkers = append(h.checkers, namedChecker{name: name, check: checker})
}

// LivenessHandler answers 200 while the process is running.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, Response{Status: StatusUp, Timestamp: time.Now().UTC()})
	}
}

// ReadinessHandler runs every registered checker and answers 200 or 503.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		h.mu.RLock()
		checkers := append([]namedChecker(nil), h.checkers...)
		h.mu.RUnlock()

		resp := Response{
			Status:    StatusUp,
			Timestamp: time.Now().UTC(),
			Checks:    make(map[string]CheckResult, len(checkers)),
		}
		for _, c := range checkers {
			if err := c.check(ctx); err != nil {
				resp.Checks[c.name] = CheckResult{Status: StatusDown, Error: err.Error()}
				resp.Status = StatusDown
				continue
			}
			resp.Checks[c.name] = CheckResult{Status: StatusUp}
		}

		status := http.StatusOK
		if resp.Status == StatusDown {
			status = http.StatusServiceUnavailable
		}
		write(w, status, resp)
	}
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
