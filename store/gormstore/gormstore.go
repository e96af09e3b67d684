// Package gormstore persists document collections in a relational database
// through gorm. Every write lands in a documents table and appends a row to a
// change journal; a polling monitor replays journal rows written by other
// processes so that local subscribers see remote changes too.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kmuchiri/jikoni-orders/store"
)

// DocumentRecord is one stored document.
type DocumentRecord struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	Collection string    `gorm:"type:varchar(64);not null;index"`
	Data       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// DocumentChange is one journal row. The monitor marks rows processed after
// re-emitting the affected collection.
type DocumentChange struct {
	ID         uint      `gorm:"primaryKey"`
	Collection string    `gorm:"type:varchar(64);not null;index:idx_col_processed"`
	DocID      string    `gorm:"type:varchar(64);not null"`
	Action     string    `gorm:"type:varchar(10);not null"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_col_processed"`
}

type Store struct {
	db *gorm.DB

	mu          sync.Mutex
	collections map[string]*collection

	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	started  bool
}

// Open migrates the document tables and returns a store. Call Start to begin
// polling for changes made by other processes.
func Open(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&DocumentRecord{}, &DocumentChange{}); err != nil {
		return nil, err
	}
	return &Store{
		db:          db,
		collections: make(map[string]*collection),
		interval:    time.Second,
		stopChan:    make(chan struct{}),
	}, nil
}

// SetPollInterval adjusts the journal polling cadence; call before Start.
func (s *Store) SetPollInterval(d time.Duration) { s.interval = d }

func (s *Store) Collection(name string) store.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		col = &collection{
			store:       s,
			name:        name,
			subscribers: make(map[int]func(store.Snapshot)),
		}
		s.collections[name] = col
	}
	return col
}

// Start launches the journal monitor goroutine.
func (s *Store) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.checkChanges()
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *Store) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	return nil
}

// checkChanges drains unprocessed journal rows and re-emits every collection
// they touch. Re-emitting a collection we changed ourselves is harmless since
// subscribers rebuild from full snapshots.
func (s *Store) checkChanges() {
	var changes []DocumentChange

	tx := s.db.Begin()
	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		return
	}
	if len(changes) == 0 {
		tx.Rollback()
		return
	}

	touched := make(map[string]bool)
	for _, change := range changes {
		touched[change.Collection] = true
		if err := tx.Model(&DocumentChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		return
	}

	s.mu.Lock()
	cols := make([]*collection, 0, len(touched))
	for name := range touched {
		if col, ok := s.collections[name]; ok {
			cols = append(cols, col)
		}
	}
	s.mu.Unlock()

	for _, col := range cols {
		col.emit()
	}
}

type collection struct {
	store *Store
	name  string

	mu          sync.Mutex
	subscribers map[int]func(store.Snapshot)
	nextSubID   int
}

func (c *collection) GetAll(ctx context.Context) ([]store.Document, error) {
	var records []DocumentRecord
	if err := c.store.db.WithContext(ctx).
		Where("collection = ?", c.name).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	docs := make([]store.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, store.Document{ID: rec.ID, Data: json.RawMessage(rec.Data)})
	}
	return docs, nil
}

func (c *collection) Get(ctx context.Context, id string) (store.Document, error) {
	var rec DocumentRecord
	err := c.store.db.WithContext(ctx).
		Where("collection = ? AND id = ?", c.name, id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.Document{}, store.ErrNotFound
	}
	if err != nil {
		return store.Document{}, err
	}
	return store.Document{ID: rec.ID, Data: json.RawMessage(rec.Data)}, nil
}

func (c *collection) Add(ctx context.Context, data json.RawMessage) (string, error) {
	id := uuid.NewString()
	err := c.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := DocumentRecord{ID: id, Collection: c.name, Data: string(data)}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return journal(tx, c.name, id, "INSERT")
	})
	if err != nil {
		return "", err
	}
	c.emit()
	return id, nil
}

func (c *collection) Set(ctx context.Context, id string, data json.RawMessage) error {
	err := c.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsert(tx, c.name, id, data)
	})
	if err != nil {
		return err
	}
	c.emit()
	return nil
}

func (c *collection) Update(ctx context.Context, id string, data json.RawMessage) error {
	err := c.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec DocumentRecord
		if err := tx.Where("collection = ? AND id = ?", c.name, id).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		rec.Data = string(data)
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return journal(tx, c.name, id, "UPDATE")
	})
	if err != nil {
		return err
	}
	c.emit()
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	err := c.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ? AND id = ?", c.name, id).
			Delete(&DocumentRecord{}).Error; err != nil {
			return err
		}
		return journal(tx, c.name, id, "DELETE")
	})
	if err != nil {
		return err
	}
	c.emit()
	return nil
}

// ApplyBatch runs every op in one transaction: a crash mid-batch rolls the
// whole batch back instead of leaving a half-updated collection.
func (c *collection) ApplyBatch(ctx context.Context, ops []store.BatchOp) error {
	err := c.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			switch op.Action {
			case store.BatchSet:
				if err := upsert(tx, c.name, op.DocID, op.Data); err != nil {
					return err
				}
			case store.BatchUpdate:
				var rec DocumentRecord
				if err := tx.Where("collection = ? AND id = ?", c.name, op.DocID).
					First(&rec).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return store.ErrNotFound
					}
					return err
				}
				rec.Data = string(op.Data)
				if err := tx.Save(&rec).Error; err != nil {
					return err
				}
				if err := journal(tx, c.name, op.DocID, "UPDATE"); err != nil {
					return err
				}
			case store.BatchDelete:
				if err := tx.Where("collection = ? AND id = ?", c.name, op.DocID).
					Delete(&DocumentRecord{}).Error; err != nil {
					return err
				}
				if err := journal(tx, c.name, op.DocID, "DELETE"); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.emit()
	return nil
}

func (c *collection) Subscribe(fn func(store.Snapshot)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// emit reloads the collection and hands the snapshot to every subscriber.
func (c *collection) emit() {
	docs, err := c.GetAll(context.Background())
	if err != nil {
		return
	}

	c.mu.Lock()
	subs := make([]func(store.Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(docs)
	}
}

func upsert(tx *gorm.DB, collection, id string, data json.RawMessage) error {
	var rec DocumentRecord
	err := tx.Where("collection = ? AND id = ?", collection, id).First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = DocumentRecord{ID: id, Collection: collection, Data: string(data)}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return journal(tx, collection, id, "INSERT")
	case err != nil:
		return err
	default:
		rec.Data = string(data)
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		return journal(tx, collection, id, "UPDATE")
	}
}

func journal(tx *gorm.DB, collection, docID, action string) error {
	return tx.Create(&DocumentChange{
		Collection: collection,
		DocID:      docID,
		Action:     action,
		ChangedAt:  time.Now(),
	}).Error
}
