package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"pomotick/internal/core/model"
)

const historyFileName = "history.json"

// IntervalRecord is one completed focus or break interval.
type IntervalRecord struct {
	ID             string     `json:"id"`
	Mode           model.Mode `json:"mode"`
	PlannedSeconds int        `json:"plannedSeconds"`
	CompletedAt    time.Time  `json:"completedAt"`
}

// HistoryStore appends completed intervals to a JSON log file.
type HistoryStore struct {
	mu  sync.Mutex
	dir string
}

// NewHistoryStore creates a history store rooted at dir.
func NewHistoryStore(dir string) *HistoryStore {
	return &HistoryStore{dir: dir}
}

// Record appends a completed interval.
func (store *HistoryStore) Record(mode model.Mode, plannedSeconds int, completedAt time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	records := store.loadLocked()
	records = append(records, IntervalRecord{
		ID:             uuid.NewString(),
		Mode:           mode,
		PlannedSeconds: plannedSeconds,
		CompletedAt:    completedAt,
	})

	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	serialized, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal interval history: %w", err)
	}
	if err := os.WriteFile(store.path(), serialized, 0o644); err != nil {
		return fmt.Errorf("write interval history: %w", err)
	}
	return nil
}

// Entries returns all recorded intervals, oldest first.
func (store *HistoryStore) Entries() []IntervalRecord {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loadLocked()
}

// CompletedToday counts intervals of the given mode completed on the same
// calendar day as now, in local time.
func (store *HistoryStore) CompletedToday(mode model.Mode, now time.Time) int {
	year, month, day := now.Date()
	count := 0
	for _, record := range store.Entries() {
		recordYear, recordMonth, recordDay := record.CompletedAt.Local().Date()
		if record.Mode == mode && recordYear == year && recordMonth == month && recordDay == day {
			count++
		}
	}
	return count
}

func (store *HistoryStore) loadLocked() []IntervalRecord {
	rawData, err := os.ReadFile(store.path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("read interval history: %v", err)
		}
		return nil
	}

	var records []IntervalRecord
	if err := json.Unmarshal(rawData, &records); err != nil {
		// A corrupt log is not worth keeping; start over.
		log.Printf("discard corrupt interval history: %v", err)
		return nil
	}
	return records
}

func (store *HistoryStore) path() string {
	return filepath.Join(store.dir, historyFileName)
}
