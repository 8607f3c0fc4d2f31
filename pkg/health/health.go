// Package health runs named dependency probes concurrently and serves the
// aggregate as liveness and readiness endpoints next to /metrics.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// Check probes one dependency. A nil error means the dependency is up.
type Check func(ctx context.Context) error

// ComponentHealth is the outcome of one Check.
type ComponentHealth struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type Report struct {
	Status     Status                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Timestamp  string                     `json:"timestamp"`
}

type probe struct {
	check Check
	// Optional dependencies degrade the report instead of failing it.
	optional bool
}

// Checker holds the registered probes. The zero value is not usable; call
// NewChecker.
type Checker struct {
	mu     sync.RWMutex
	probes map[string]probe
	now    func() time.Time
}

func NewChecker() *Checker {
	return &Checker{probes: make(map[string]probe), now: time.Now}
}

// Register adds a probe whose failure marks the service down.
func (c *Checker) Register(name string, check Check) {
	c.register(name, probe{check: check})
}

// RegisterOptional adds a probe whose failure only degrades the service,
// e.g. a cache the pipeline can run without.
func (c *Checker) RegisterOptional(name string, check Check) {
	c.register(name, probe{check: check, optional: true})
}

func (c *Checker) register(name string, p probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[name] = p
}

// Run executes every probe concurrently. The report status is the worst
// component status.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	probes := make(map[string]probe, len(c.probes))
	for name, p := range c.probes {
		probes[name] = p
	}
	c.mu.RUnlock()

	report := Report{
		Status:     StatusUp,
		Components: make(map[string]ComponentHealth, len(probes)),
		Timestamp:  c.now().UTC().Format(time.RFC3339),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, p := range probes {
		wg.Go(func() {
			start := time.Now()
			err := p.check(ctx)
			result := ComponentHealth{Status: StatusUp, Latency: time.Since(start).Round(time.Millisecond).String()}
			if err != nil {
				result.Status = StatusDown
				if p.optional {
					result.Status = StatusDegraded
				}
				result.Message = err.Error()
			}
			mu.Lock()
			report.Components[name] = result
			mu.Unlock()
		})
	}
	wg.Wait()

	for _, comp := range report.Components {
		switch comp.Status {
		case StatusDown:
			report.Status = StatusDown
			return report
		case StatusDegraded:
			report.Status = StatusDegraded
		}
	}
	return report
}

// LiveHandler answers as long as the process can serve HTTP.
func (c *Checker) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}

// ReadyHandler runs the probes and answers 503 unless every critical
// dependency is up.
func (c *Checker) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		report := c.Run(ctx)
		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(report)
	}
}
