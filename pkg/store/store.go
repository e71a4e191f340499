// Package store persists benchmark results so runs can be compared over time.
//
// Implementations:
//   - [FileStore]: one JSON file per record, for local CLI use
//   - [MongoStore]: a MongoDB collection shared between machines
//   - [NullStore]: discards everything, used when history is disabled
//
// # Usage
//
//	s, err := store.NewFileStore("")  // ~/.local/share/diagvor/history
//	rec := store.NewRecord()
//	rec.Width, rec.Height = 800, 600
//	err = s.Save(ctx, rec)
//
//	recent, err := s.List(ctx, 10)    // newest first
package store

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit is the number of records List returns for a limit <= 0.
const DefaultListLimit = 20

// Record is one saved benchmark comparison between the sequential and
// parallel engines.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Host      string    `json:"host" bson:"host"`

	Width   int `json:"width" bson:"width"`
	Height  int `json:"height" bson:"height"`
	Sites   int `json:"sites" bson:"sites"`
	Workers int `json:"workers" bson:"workers"`
	Runs    int `json:"runs" bson:"runs"`

	// Best-of-runs timings.
	SeqWall time.Duration `json:"seq_wall_ns" bson:"seq_wall_ns"`
	SeqCPU  time.Duration `json:"seq_cpu_ns" bson:"seq_cpu_ns"`
	ParWall time.Duration `json:"par_wall_ns" bson:"par_wall_ns"`
	ParCPU  time.Duration `json:"par_cpu_ns" bson:"par_cpu_ns"`

	Speedup   float64 `json:"speedup" bson:"speedup"`
	Identical bool    `json:"identical" bson:"identical"`
}

// NewRecord returns a record with a fresh ID, the current time and the
// local host name.
func NewRecord() *Record {
	host, _ := os.Hostname()
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Host:      host,
	}
}

// Store saves and lists benchmark records.
type Store interface {
	// Save persists rec. Records without an ID are assigned one.
	Save(ctx context.Context, rec *Record) error

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

func ensureID(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
