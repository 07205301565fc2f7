package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/draft-companion/internal/domain/roster"
)

type RosterExportRepository struct {
	mu     sync.RWMutex
	latest roster.Export
	exists bool
}

func NewRosterExportRepository() *RosterExportRepository {
	return &RosterExportRepository{}
}

func (r *RosterExportRepository) Save(_ context.Context, export roster.Export) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.latest = cloneExport(export)
	r.exists = true
	return nil
}

func (r *RosterExportRepository) GetLatest(_ context.Context) (roster.Export, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return roster.Export{}, false, nil
	}
	return cloneExport(r.latest), true, nil
}

func cloneExport(export roster.Export) roster.Export {
	copied := export
	copied.Entries = append([]roster.Entry(nil), export.Entries...)
	return copied
}
