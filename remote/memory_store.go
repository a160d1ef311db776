// ABOUTME: This file implements an in-memory remote record store for tests and local runs
// ABOUTME: Keeps per-zone record tables with an ordered change log and integer cursor tokens

package remote

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"feed-sync-engine/models"
)

type changeEntry struct {
	key     models.RecordKey
	deleted bool
}

type memoryZone struct {
	records map[string]models.RemoteRecord
	log     []changeEntry
	version int
}

// MemoryStore is an in-memory Store. Failures can be scripted per operation
// for exercising the classifier-driven paths.
type MemoryStore struct {
	mu       sync.Mutex
	zones    map[string]*memoryZone
	scripted map[string][]error
}

// NewMemoryStore creates an empty store with no zones.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		zones:    make(map[string]*memoryZone),
		scripted: make(map[string][]error),
	}
}

// FailNext queues errors to be returned by the next calls of the named
// operation ("save", "saveIfUnchanged", "delete", "query", "fetchChanges",
// "createZone"), in order, before the real behavior resumes.
func (s *MemoryStore) FailNext(op string, errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripted[op] = append(s.scripted[op], errs...)
}

// DeleteZone destroys a zone the way a user deleting remote data would.
// Subsequent calls against the zone fail with CodeZoneDeleted.
func (s *MemoryStore) DeleteZone(zone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[zone] = nil
}

// RecordCount reports how many records a zone currently holds.
func (s *MemoryStore) RecordCount(zone string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if z := s.zones[zone]; z != nil {
		return len(z.records)
	}
	return 0
}

// Record returns a copy of one record and whether it exists.
func (s *MemoryStore) Record(zone, id string) (models.RemoteRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if z := s.zones[zone]; z != nil {
		r, ok := z.records[id]
		return r, ok
	}
	return models.RemoteRecord{}, false
}

func (s *MemoryStore) CreateZone(_ context.Context, zone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nextScripted("createZone"); err != nil {
		return err
	}
	if z, ok := s.zones[zone]; !ok || z == nil {
		s.zones[zone] = &memoryZone{records: make(map[string]models.RemoteRecord)}
	}
	return nil
}

func (s *MemoryStore) Save(_ context.Context, zone string, records []models.RemoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nextScripted("save"); err != nil {
		return err
	}
	z, err := s.zone(zone)
	if err != nil {
		return err
	}
	for _, r := range records {
		z.save(r)
	}
	return nil
}

func (s *MemoryStore) SaveIfUnchanged(_ context.Context, zone string, records []models.RemoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nextScripted("saveIfUnchanged"); err != nil {
		return err
	}
	z, err := s.zone(zone)
	if err != nil {
		return err
	}

	itemErrors := make(map[string]error)
	for _, r := range records {
		existing, ok := z.records[r.ID]
		if ok && existing.Version != r.Version {
			itemErrors[r.ID] = &Error{Code: CodeConflict}
			continue
		}
		z.save(r)
	}
	if len(itemErrors) == len(records) && len(records) > 0 {
		return &Error{Code: CodeConflict}
	}
	if len(itemErrors) > 0 {
		return &Error{Code: CodePartialFailure, ItemErrors: itemErrors}
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, zone string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nextScripted("delete"); err != nil {
		return err
	}
	z, err := s.zone(zone)
	if err != nil {
		return err
	}
	for _, id := range ids {
		r, ok := z.records[id]
		if !ok {
			continue
		}
		delete(z.records, id)
		z.log = append(z.log, changeEntry{key: models.RecordKey{Type: r.Type, ID: id}, deleted: true})
	}
	return nil
}

func (s *MemoryStore) Query(_ context.Context, zone string, recordType models.RecordType, match func(models.RemoteRecord) bool) ([]models.RemoteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nextScripted("query"); err != nil {
		return nil, err
	}
	z, err := s.zone(zone)
	if err != nil {
		return nil, err
	}
	var out []models.RemoteRecord
	for _, r := range z.records {
		if r.Type != recordType {
			continue
		}
		if match == nil || match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) FetchChanges(_ context.Context, zone string, token string) (*models.ChangeSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nextScripted("fetchChanges"); err != nil {
		return nil, err
	}
	z, err := s.zone(zone)
	if err != nil {
		return nil, err
	}

	start := 0
	if token != "" {
		parsed, parseErr := strconv.Atoi(token)
		if parseErr != nil || parsed > len(z.log) {
			return nil, &Error{Code: CodeTokenExpired}
		}
		start = parsed
	}

	// Compact the tail of the log: one entry per record id, latest state.
	set := &models.ChangeSet{Token: strconv.Itoa(len(z.log))}
	seen := make(map[models.RecordKey]bool)
	for i := len(z.log) - 1; i >= start; i-- {
		entry := z.log[i]
		if seen[entry.key] {
			continue
		}
		seen[entry.key] = true
		if entry.deleted {
			set.Deleted = append(set.Deleted, entry.key)
			continue
		}
		if r, ok := z.records[entry.key.ID]; ok {
			set.Changed = append(set.Changed, r)
		}
	}
	return set, nil
}

func (s *MemoryStore) zone(name string) (*memoryZone, error) {
	z, ok := s.zones[name]
	if !ok {
		return nil, &Error{Code: CodeZoneNotFound}
	}
	if z == nil {
		return nil, &Error{Code: CodeZoneDeleted}
	}
	return z, nil
}

func (s *MemoryStore) nextScripted(op string) error {
	queue := s.scripted[op]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	s.scripted[op] = queue[1:]
	return err
}

func (z *memoryZone) save(r models.RemoteRecord) {
	z.version++
	r.Version = fmt.Sprintf("v%d", z.version)
	z.records[r.ID] = r
	z.log = append(z.log, changeEntry{key: models.RecordKey{Type: r.Type, ID: r.ID}})
}
