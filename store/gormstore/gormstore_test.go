package gormstore

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kmuchiri/jikoni-orders/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// One shared in-memory database per test; the pool may open several
	// connections and they must all see the same tables.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := Open(db)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func doc(s string) json.RawMessage { return json.RawMessage(s) }

func TestCRUDPersists(t *testing.T) {
	s := openTestStore(t)
	col := s.Collection("menuItems")
	ctx := context.Background()

	id, err := col.Add(ctx, doc(`{"name":"Pilau","price":150}`))
	require.NoError(t, err)

	got, err := col.Get(ctx, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Pilau","price":150}`, string(got.Data))

	require.NoError(t, col.Update(ctx, id, doc(`{"name":"Pilau","price":160}`)))
	got, _ = col.Get(ctx, id)
	assert.JSONEq(t, `{"name":"Pilau","price":160}`, string(got.Data))

	require.NoError(t, col.Delete(ctx, id))
	_, err = col.Get(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollectionsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Collection("menuItems").Add(ctx, doc(`{"name":"a"}`))
	s.Collection("orders").Add(ctx, doc(`{"customer":"b"}`))

	menu, err := s.Collection("menuItems").GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, 1)

	orders, err := s.Collection("orders").GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestUpdateMissingDocument(t *testing.T) {
	s := openTestStore(t)
	err := s.Collection("menuItems").Update(context.Background(), "nope", doc(`{}`))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUpserts(t *testing.T) {
	s := openTestStore(t)
	col := s.Collection("settings")
	ctx := context.Background()

	require.NoError(t, col.Set(ctx, "orderClosingTime", doc(`{"value":"12:45"}`)))
	require.NoError(t, col.Set(ctx, "orderClosingTime", doc(`{"value":"13:00"}`)))

	all, err := col.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.JSONEq(t, `{"value":"13:00"}`, string(all[0].Data))
}

func TestLocalWritesNotifySubscribers(t *testing.T) {
	s := openTestStore(t)
	col := s.Collection("menuItems")
	ctx := context.Background()

	var emissions []store.Snapshot
	unsub := col.Subscribe(func(snap store.Snapshot) {
		emissions = append(emissions, snap)
	})

	col.Add(ctx, doc(`{"name":"a"}`))
	col.Add(ctx, doc(`{"name":"b"}`))
	require.Len(t, emissions, 2)
	assert.Len(t, emissions[1], 2)

	unsub()
	col.Add(ctx, doc(`{"name":"c"}`))
	assert.Len(t, emissions, 2)
}

func TestJournalRowsWritten(t *testing.T) {
	s := openTestStore(t)
	col := s.Collection("menuItems")
	ctx := context.Background()

	id, _ := col.Add(ctx, doc(`{"name":"a"}`))
	col.Update(ctx, id, doc(`{"name":"b"}`))
	col.Delete(ctx, id)

	var changes []DocumentChange
	require.NoError(t, s.db.Order("id ASC").Find(&changes).Error)
	require.Len(t, changes, 3)
	assert.Equal(t, "INSERT", changes[0].Action)
	assert.Equal(t, "UPDATE", changes[1].Action)
	assert.Equal(t, "DELETE", changes[2].Action)
	for _, change := range changes {
		assert.False(t, change.Processed)
	}
}

func TestCheckChangesReemitsAndMarksProcessed(t *testing.T) {
	s := openTestStore(t)
	col := s.Collection("menuItems")

	// Simulate another process: write the tables directly, bypassing the
	// collection API, so only the journal can surface the change.
	require.NoError(t, s.db.Create(&DocumentRecord{
		ID: "ext-1", Collection: "menuItems", Data: `{"name":"external"}`,
	}).Error)
	require.NoError(t, s.db.Create(&DocumentChange{
		Collection: "menuItems", DocID: "ext-1", Action: "INSERT",
	}).Error)

	var emissions []store.Snapshot
	unsub := col.Subscribe(func(snap store.Snapshot) {
		emissions = append(emissions, snap)
	})
	defer unsub()

	s.checkChanges()

	require.Len(t, emissions, 1)
	require.Len(t, emissions[0], 1)
	assert.Equal(t, "ext-1", emissions[0][0].ID)

	var unprocessed int64
	s.db.Model(&DocumentChange{}).Where("processed = ?", false).Count(&unprocessed)
	assert.Zero(t, unprocessed)

	// Nothing left to replay.
	s.checkChanges()
	assert.Len(t, emissions, 1)
}

func TestApplyBatchRollsBackOnFailure(t *testing.T) {
	s := openTestStore(t)
	col := s.Collection("menuItems")
	ctx := context.Background()

	a, _ := col.Add(ctx, doc(`{"n":1}`))

	err := col.ApplyBatch(ctx, []store.BatchOp{
		{Action: store.BatchUpdate, DocID: a, Data: doc(`{"n":10}`)},
		{Action: store.BatchUpdate, DocID: "missing", Data: doc(`{"n":20}`)},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The first op must have rolled back with the second.
	got, _ := col.Get(ctx, a)
	assert.JSONEq(t, `{"n":1}`, string(got.Data))
}

func TestApplyBatchCommits(t *testing.T) {
	s := openTestStore(t)
	col := s.Collection("menuItems")
	ctx := context.Background()

	a, _ := col.Add(ctx, doc(`{"available":true}`))
	b, _ := col.Add(ctx, doc(`{"available":true}`))

	require.NoError(t, col.ApplyBatch(ctx, []store.BatchOp{
		{Action: store.BatchUpdate, DocID: a, Data: doc(`{"available":false}`)},
		{Action: store.BatchUpdate, DocID: b, Data: doc(`{"available":false}`)},
	}))

	all, _ := col.GetAll(ctx)
	for _, d := range all {
		assert.JSONEq(t, `{"available":false}`, string(d.Data))
	}
}
