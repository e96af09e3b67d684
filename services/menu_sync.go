package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/store"
	"github.com/kmuchiri/jikoni-orders/utils"
)

// MenuSynchronizer mirrors the menu collection into local state, seeding the
// built-in catalog on first run. The store is authoritative: every mutation is
// a write-through and the local list only changes via subscription emissions.
type MenuSynchronizer struct {
	col  store.Collection
	seed []models.MenuItem

	mu    sync.RWMutex
	items []models.MenuItem

	unsub    func()
	onChange func([]models.MenuItem)
}

func NewMenuSynchronizer(col store.Collection, seed []models.MenuItem) *MenuSynchronizer {
	return &MenuSynchronizer{col: col, seed: seed}
}

// OnChange registers a callback invoked with the sorted list after every
// rebuild. Set before Start.
func (m *MenuSynchronizer) OnChange(fn func([]models.MenuItem)) {
	m.onChange = fn
}

// Start seeds an empty collection from the built-in catalog and subscribes to
// it. When the store cannot be read or seeded at all, the catalog itself
// becomes the local list so the menu is never empty.
func (m *MenuSynchronizer) Start(ctx context.Context) {
	docs, err := m.col.GetAll(ctx)
	if err != nil {
		utils.ErrorLogger.Printf("reading menu collection failed, serving built-in catalog: %v", err)
		m.adoptFallback()
	} else if len(docs) == 0 {
		m.seedCatalog(ctx)
	}

	m.unsub = m.col.Subscribe(m.rebuild)

	// Deliver the initial state; later emissions overwrite it.
	if docs, err := m.col.GetAll(ctx); err == nil {
		m.rebuild(docs)
	}
}

// Stop detaches the subscription.
func (m *MenuSynchronizer) Stop() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

// seedCatalog creates one document per catalog entry, sequentially. Partial
// seeding on failure is acceptable; a total failure falls back to serving the
// catalog locally.
func (m *MenuSynchronizer) seedCatalog(ctx context.Context) {
	utils.InfoLogger.Printf("menu collection empty, seeding %d items", len(m.seed))
	created := 0
	for _, item := range m.seed {
		item.ID = "" // the store assigns ids
		data, err := json.Marshal(item)
		if err != nil {
			continue
		}
		if _, err := m.col.Add(ctx, data); err != nil {
			utils.ErrorLogger.Printf("seeding %q failed: %v", item.Name, err)
			continue
		}
		created++
	}
	if created == 0 && len(m.seed) > 0 {
		utils.ErrorLogger.Printf("menu seeding failed entirely, serving built-in catalog")
		m.adoptFallback()
	}
}

func (m *MenuSynchronizer) adoptFallback() {
	items := make([]models.MenuItem, len(m.seed))
	copy(items, m.seed)
	sortMenu(items)
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
}

// Items returns a copy of the current sorted list.
func (m *MenuSynchronizer) Items() []models.MenuItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

// ItemByID looks up one mirrored item.
func (m *MenuSynchronizer) ItemByID(id string) (models.MenuItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, item := range m.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

// Add creates a new menu document.
func (m *MenuSynchronizer) Add(ctx context.Context, item models.MenuItem) (string, error) {
	item.ID = ""
	data, err := json.Marshal(item)
	if err != nil {
		return "", err
	}
	return m.col.Add(ctx, data)
}

// Update replaces a menu document.
func (m *MenuSynchronizer) Update(ctx context.Context, id string, item models.MenuItem) error {
	item.ID = ""
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return m.col.Update(ctx, id, data)
}

// Remove deletes a menu document.
func (m *MenuSynchronizer) Remove(ctx context.Context, id string) error {
	if _, ok := m.ItemByID(id); !ok {
		return store.ErrNotFound
	}
	return m.col.Delete(ctx, id)
}

// SetAvailability flips one item's availability flag.
func (m *MenuSynchronizer) SetAvailability(ctx context.Context, id string, available bool) error {
	item, ok := m.ItemByID(id)
	if !ok {
		return store.ErrNotFound
	}
	item.Available = available
	return m.Update(ctx, id, item)
}

// BulkSetAvailability flips every item's availability in one atomic batch.
func (m *MenuSynchronizer) BulkSetAvailability(ctx context.Context, available bool) error {
	items := m.Items()
	ops := make([]store.BatchOp, 0, len(items))
	for _, item := range items {
		id := item.ID
		item.Available = available
		item.ID = ""
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		ops = append(ops, store.BatchOp{Action: store.BatchUpdate, DocID: id, Data: data})
	}
	if len(ops) == 0 {
		return nil
	}
	return m.col.ApplyBatch(ctx, ops)
}

// rebuild replaces the local list from a full snapshot. Emission order does
// not matter: the result is always the deterministic sort of the latest
// snapshot's documents.
func (m *MenuSynchronizer) rebuild(snap store.Snapshot) {
	items := make([]models.MenuItem, 0, len(snap))
	for _, doc := range snap {
		var item models.MenuItem
		if err := json.Unmarshal(doc.Data, &item); err != nil {
			utils.ErrorLogger.Printf("skipping malformed menu document %s: %v", doc.ID, err)
			continue
		}
		item.ID = doc.ID
		items = append(items, item)
	}
	sortMenu(items)

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(m.Items())
	}
}

// sortMenu orders by category then name so display order never depends on
// store-side ordering.
func sortMenu(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
}
