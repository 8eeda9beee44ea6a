// Package localdb is the offline/demo implementation of the persistence
// interfaces in internal/repo. The whole database is one JSON document held
// in memory and rewritten to disk in full after every mutation, so the store
// survives restarts without any external database. An absent or unreadable
// snapshot is replaced with a small seed dataset.
//
// All access is serialized behind a single mutex. Two concurrent mutations
// cannot interleave, and the later one wins; there is no merge and no
// optimistic-concurrency check.
package localdb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// snapshot is the on-disk shape of the store: three flat arrays, one per
// record kind. The key names match the original browser snapshot so an
// exported demo database can be dropped in unchanged.
type snapshot struct {
	Suppliers   []domain.Supplier   `json:"suppliers"`
	Trips       []domain.Trip       `json:"trips"`
	TripAnimals []domain.TripAnimal `json:"tripAnimals"`
}

// Store owns the in-memory snapshot and its backing file.
type Store struct {
	mu   sync.Mutex
	path string // empty means in-memory only (tests, ephemeral demos)
	snap snapshot
}

// Open loads the snapshot at path, seeding a fresh database when the file is
// absent or unparsable. An empty path yields a purely in-memory store that
// never touches disk.
func Open(path string) (*Store, error) {
	st := &Store{path: path}

	if path == "" {
		st.snap = seed()
		return st, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		st.snap = seed()
		if err := st.persistLocked(); err != nil {
			return nil, fmt.Errorf("localdb.Open: %w", err)
		}
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localdb.Open: read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.Suppliers == nil {
		slog.Warn("localdb: snapshot unreadable, reseeding", "path", path, "error", err)
		st.snap = seed()
		if err := st.persistLocked(); err != nil {
			return nil, fmt.Errorf("localdb.Open: %w", err)
		}
		return st, nil
	}

	st.snap = snap
	return st, nil
}

// Suppliers returns the supplier persistence interface backed by this store.
func (st *Store) Suppliers() repo.SupplierRepo { return supplierStore{st} }

// Trips returns the trip persistence interface backed by this store.
func (st *Store) Trips() repo.TripRepo { return tripStore{st} }

// Reports returns the report read interface backed by this store.
func (st *Store) Reports() repo.ReportRepo { return reportStore{st} }

// persistLocked writes the entire snapshot back to disk. Callers must hold
// st.mu (or be the only reference, as in Open). The write goes through a
// temp file and a rename so a crash mid-write never corrupts the snapshot.
func (st *Store) persistLocked() error {
	if st.path == "" {
		return nil
	}

	raw, err := json.MarshalIndent(st.snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := st.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// seed returns the demo dataset used for a fresh or unreadable snapshot:
// two sample suppliers and no trips.
func seed() snapshot {
	now := time.Now().UTC()
	return snapshot{
		Suppliers: []domain.Supplier{
			{
				ID:          uuid.New(),
				Name:        "Mwanga Livestock Traders",
				Phone:       "+255 712 555 111",
				Region:      "Manyara",
				DefaultMark: "M1",
				CreatedAt:   now,
			},
			{
				ID:          uuid.New(),
				Name:        "Kilimanjaro Goats",
				Phone:       "+255 713 222 444",
				Region:      "Arusha",
				DefaultMark: "KG",
				CreatedAt:   now,
			},
		},
		Trips:       []domain.Trip{},
		TripAnimals: []domain.TripAnimal{},
	}
}
