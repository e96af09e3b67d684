package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/store"
	"github.com/kmuchiri/jikoni-orders/utils"
)

// SettingsSynchronizer mirrors the singleton setting documents into local
// state. Writes go through the store only; the local mirror updates when the
// store echoes the change back through the subscription (write-through, no
// optimistic update).
type SettingsSynchronizer struct {
	col store.Collection

	mu     sync.RWMutex
	values map[string]string

	unsub    func()
	onChange func(map[string]string)
}

func NewSettingsSynchronizer(col store.Collection) *SettingsSynchronizer {
	return &SettingsSynchronizer{
		col:    col,
		values: make(map[string]string),
	}
}

// OnChange registers a callback invoked with a copy of all values after every
// rebuild. Set before Start.
func (s *SettingsSynchronizer) OnChange(fn func(map[string]string)) {
	s.onChange = fn
}

// Start adopts every known setting, seeding its default when the document is
// absent, then subscribes for future changes. A read or write failure keeps
// the default and is not fatal.
func (s *SettingsSynchronizer) Start(ctx context.Context) {
	for id, def := range models.SettingDefaults() {
		s.mu.Lock()
		s.values[id] = def
		s.mu.Unlock()

		doc, err := s.col.Get(ctx, id)
		switch {
		case err == store.ErrNotFound:
			data, _ := json.Marshal(models.Setting{Value: def})
			if err := s.col.Set(ctx, id, data); err != nil {
				utils.ErrorLogger.Printf("seeding setting %s failed: %v", id, err)
			}
		case err != nil:
			utils.ErrorLogger.Printf("reading setting %s failed: %v", id, err)
		default:
			var setting models.Setting
			if err := json.Unmarshal(doc.Data, &setting); err != nil {
				utils.ErrorLogger.Printf("setting %s has malformed body: %v", id, err)
				continue
			}
			s.mu.Lock()
			s.values[id] = setting.Value
			s.mu.Unlock()
		}
	}

	s.unsub = s.col.Subscribe(s.rebuild)
}

// Stop detaches the subscription.
func (s *SettingsSynchronizer) Stop() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

// Value returns the mirrored value for a setting id, or its default when the
// id has never been seen.
func (s *SettingsSynchronizer) Value(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[id]; ok {
		return v
	}
	return models.SettingDefaults()[id]
}

// Values returns a copy of all mirrored settings.
func (s *SettingsSynchronizer) Values() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Update writes a setting through to the store. The local mirror is left
// untouched; the subscription emission brings the new value back.
func (s *SettingsSynchronizer) Update(ctx context.Context, id, value string) error {
	data, err := json.Marshal(models.Setting{Value: value})
	if err != nil {
		return err
	}
	return s.col.Set(ctx, id, data)
}

// rebuild overwrites the mirror from a full settings snapshot,
// last-writer-wins with no merging.
func (s *SettingsSynchronizer) rebuild(snap store.Snapshot) {
	s.mu.Lock()
	for _, doc := range snap {
		var setting models.Setting
		if err := json.Unmarshal(doc.Data, &setting); err != nil {
			utils.ErrorLogger.Printf("skipping malformed setting %s: %v", doc.ID, err)
			continue
		}
		s.values[doc.ID] = setting.Value
	}
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(s.Values())
	}
}
