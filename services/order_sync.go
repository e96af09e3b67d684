package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/store"
	"github.com/kmuchiri/jikoni-orders/utils"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrMissingCustomer   = errors.New("customer name is required")
	ErrUnknownOrder      = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status change")
)

// OrderSynchronizer mirrors the orders collection newest-first and owns every
// write to it.
type OrderSynchronizer struct {
	col store.Collection

	mu     sync.RWMutex
	orders []models.Order

	unsub    func()
	onChange func([]models.Order)
}

func NewOrderSynchronizer(col store.Collection) *OrderSynchronizer {
	return &OrderSynchronizer{col: col}
}

// OnChange registers a callback invoked with the sorted list after every
// rebuild. Set before Start.
func (o *OrderSynchronizer) OnChange(fn func([]models.Order)) {
	o.onChange = fn
}

// Start subscribes to the orders collection and loads the initial state.
func (o *OrderSynchronizer) Start(ctx context.Context) {
	o.unsub = o.col.Subscribe(o.rebuild)
	if docs, err := o.col.GetAll(ctx); err == nil {
		o.rebuild(docs)
	} else {
		utils.ErrorLogger.Printf("reading orders collection failed: %v", err)
	}
}

// Stop detaches the subscription.
func (o *OrderSynchronizer) Stop() {
	if o.unsub != nil {
		o.unsub()
		o.unsub = nil
	}
}

// Orders returns a copy of the mirrored list, newest first.
func (o *OrderSynchronizer) Orders() []models.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]models.Order, len(o.orders))
	copy(out, o.orders)
	return out
}

// OrderByID looks up one mirrored order.
func (o *OrderSynchronizer) OrderByID(id string) (models.Order, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, order := range o.orders {
		if order.ID == id {
			return order, true
		}
	}
	return models.Order{}, false
}

// Create validates and writes a new order with status pending and the current
// timestamp. No availability re-check happens here: an item going unavailable
// between add-to-cart and submit is accepted, not corrected.
func (o *OrderSynchronizer) Create(ctx context.Context, order models.Order) (string, error) {
	order.CustomerName = strings.TrimSpace(order.CustomerName)
	if order.CustomerName == "" {
		return "", ErrMissingCustomer
	}
	if len(order.Items) == 0 {
		return "", ErrEmptyOrder
	}
	order.ID = ""
	order.Status = models.StatusPending
	order.Timestamp = time.Now().UnixMilli()

	data, err := json.Marshal(order)
	if err != nil {
		return "", err
	}
	return o.col.Add(ctx, data)
}

// SetStatus moves an order forward through the status lifecycle; backward
// moves are rejected before any store call.
func (o *OrderSynchronizer) SetStatus(ctx context.Context, id, status string) error {
	order, ok := o.OrderByID(id)
	if !ok {
		return ErrUnknownOrder
	}
	if err := models.CheckStatusTransition(order.Status, status); err != nil {
		return errors.Join(ErrInvalidTransition, err)
	}

	order.Status = status
	order.ID = ""
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return o.col.Update(ctx, id, data)
}

// Remove deletes an order.
func (o *OrderSynchronizer) Remove(ctx context.Context, id string) error {
	return o.col.Delete(ctx, id)
}

// rebuild replaces the local list from a full snapshot, sorted descending by
// timestamp. A missing or zero timestamp sorts last.
func (o *OrderSynchronizer) rebuild(snap store.Snapshot) {
	orders := make([]models.Order, 0, len(snap))
	for _, doc := range snap {
		var order models.Order
		if err := json.Unmarshal(doc.Data, &order); err != nil {
			utils.ErrorLogger.Printf("skipping malformed order document %s: %v", doc.ID, err)
			continue
		}
		order.ID = doc.ID
		orders = append(orders, order)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Timestamp > orders[j].Timestamp
	})

	o.mu.Lock()
	o.orders = orders
	o.mu.Unlock()

	if o.onChange != nil {
		o.onChange(o.Orders())
	}
}
