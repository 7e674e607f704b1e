// Package health runs dependency checks for the readiness and liveness endpoints.
package health

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Status is the outcome of a check or of a whole report.
type Status string

const (
	StatusHealthy   Status = "Healthy"
	StatusUnhealthy Status = "Unhealthy"

	// Readiness reports use these in place of Healthy/Unhealthy.
	StatusReady    Status = "Ready"
	StatusNotReady Status = "Not Ready"
)

// TagReady marks checks that must pass before the service takes traffic.
const TagReady = "ready"

const defaultTimeout = 2 * time.Second

// Check is a single named probe.
type Check struct {
	Name    string
	Tags    []string
	Timeout time.Duration
	// Run returns a human readable description of a passing probe, or an error.
	Run func(ctx context.Context) (string, error)
}

// Entry is the result of one check.
type Entry struct {
	Name        string `json:"name"`
	Status      Status `json:"status"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Report is the aggregated result returned by the health endpoints.
type Report struct {
	Status        Status  `json:"status"`
	TotalDuration string  `json:"totalDuration"`
	Entries       []Entry `json:"entries"`
}

// Healthy reports whether every entry passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Readiness returns the report with its overall status expressed as Ready or Not Ready.
// Entry statuses are left as they are.
func (r Report) Readiness() Report {
	if r.Healthy() {
		r.Status = StatusReady
	} else {
		r.Status = StatusNotReady
	}
	return r
}

// Checker holds the registered checks. It is safe for concurrent use.
type Checker struct {
	checks []Check
}

func NewChecker(checks ...Check) *Checker {
	return &Checker{checks: checks}
}

// Run executes the checks carrying tag, or all checks when tag is empty.
// Checks run concurrently and entries keep registration order.
func (c *Checker) Run(ctx context.Context, tag string) Report {
	start := time.Now()

	selected := make([]Check, 0, len(c.checks))
	for _, chk := range c.checks {
		if tag == "" || slices.Contains(chk.Tags, tag) {
			selected = append(selected, chk)
		}
	}

	entries := make([]Entry, len(selected))
	var wg sync.WaitGroup
	for i, chk := range selected {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries[i] = runCheck(ctx, chk)
		}()
	}
	wg.Wait()

	status := StatusHealthy
	for _, e := range entries {
		if e.Status != StatusHealthy {
			status = StatusUnhealthy
		}
	}
	return Report{
		Status:        status,
		TotalDuration: time.Since(start).String(),
		Entries:       entries,
	}
}

// Live returns a passing report without touching any dependency.
func Live() Report {
	return Report{Status: StatusHealthy, TotalDuration: "0s", Entries: []Entry{}}
}

func runCheck(ctx context.Context, chk Check) Entry {
	timeout := chk.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	desc, err := chk.Run(ctx)
	e := Entry{
		Name:        chk.Name,
		Status:      StatusHealthy,
		Duration:    time.Since(start).String(),
		Description: desc,
	}
	if err != nil {
		e.Status = StatusUnhealthy
		e.Description = err.Error()
	}
	return e
}

// MongoPinger is satisfied by *mongo.Client.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// SQLPinger is satisfied by *sql.DB.
type SQLPinger interface {
	PingContext(ctx context.Context) error
}

var _ SQLPinger = (*sql.DB)(nil)

// MongoCheck pings the primary of the document store.
func MongoCheck(client MongoPinger) Check {
	return Check{
		Name: "mongodb",
		Tags: []string{TagReady},
		Run: func(ctx context.Context) (string, error) {
			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return "", fmt.Errorf("MongoDB connection failed: %w", err)
			}
			return "MongoDB connection is working", nil
		},
	}
}

// PostgresCheck pings the JSONB document store.
func PostgresCheck(db SQLPinger) Check {
	return Check{
		Name: "postgres",
		Tags: []string{TagReady},
		Run: func(ctx context.Context) (string, error) {
			if err := db.PingContext(ctx); err != nil {
				return "", fmt.Errorf("PostgreSQL connection failed: %w", err)
			}
			return "PostgreSQL connection is working", nil
		},
	}
}

// SelfCheck always passes once the process can serve requests.
func SelfCheck() Check {
	return Check{
		Name: "self",
		Run: func(context.Context) (string, error) {
			return "API is running", nil
		},
	}
}
