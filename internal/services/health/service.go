package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health and readiness checks.
type Service struct {
	db *sql.DB // nil when running on in-memory storage
}

// NewService constructs a health service. db may be nil.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Status reports liveness.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Ready reports whether backing storage is reachable.
func (s *Service) Ready(ctx context.Context) map[string]any {
	out := map[string]any{"ok": true, "storage": "memory"}
	if s.db == nil {
		return out
	}
	out["storage"] = "postgres"
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		out["ok"] = false
		out["error"] = err.Error()
	}
	return out
}
