package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kmuchiri/jikoni-orders/models"
)

var (
	ErrWindowClosed    = errors.New("ordering is closed for today")
	ErrItemUnavailable = errors.New("item is currently unavailable")
	ErrNotInCart       = errors.New("item is not in the cart")
)

// cartLine is one quantity-keyed entry: a snapshot of the menu item at the
// moment it was first added, plus a count.
type cartLine struct {
	item     models.MenuItem
	quantity int
}

// CartComposer accumulates one session's cart, customer name and special
// instructions, and turns them into an order on submit. All checks happen
// before any store call; a failed submit leaves everything intact for retry.
type CartComposer struct {
	orders  *OrderSynchronizer
	window  *OrderingWindow
	closing func() string // current closing-time setting

	mu           sync.Mutex
	lines        map[string]*cartLine
	lineOrder    []string // item ids in first-add order
	customerName string
	instructions string
}

func NewCartComposer(orders *OrderSynchronizer, window *OrderingWindow, closing func() string) *CartComposer {
	return &CartComposer{
		orders:  orders,
		window:  window,
		closing: closing,
		lines:   make(map[string]*cartLine),
	}
}

// AddItem snapshots the item into the cart, or bumps the quantity when it is
// already there. Rejected once the ordering window has closed or when the
// item is flagged unavailable.
func (cc *CartComposer) AddItem(item models.MenuItem) error {
	if !cc.window.Open(cc.closing()) {
		return ErrWindowClosed
	}
	if !item.Available {
		return ErrItemUnavailable
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	if line, ok := cc.lines[item.ID]; ok {
		line.quantity++
		return nil
	}
	cc.lines[item.ID] = &cartLine{item: item, quantity: 1}
	cc.lineOrder = append(cc.lineOrder, item.ID)
	return nil
}

// RemoveItem decrements the quantity for an item, dropping the line at zero.
func (cc *CartComposer) RemoveItem(itemID string) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	line, ok := cc.lines[itemID]
	if !ok {
		return ErrNotInCart
	}
	line.quantity--
	if line.quantity <= 0 {
		delete(cc.lines, itemID)
		for i, id := range cc.lineOrder {
			if id == itemID {
				cc.lineOrder = append(cc.lineOrder[:i], cc.lineOrder[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Clear empties the cart and both text fields.
func (cc *CartComposer) Clear() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.clearLocked()
}

func (cc *CartComposer) clearLocked() {
	cc.lines = make(map[string]*cartLine)
	cc.lineOrder = nil
	cc.customerName = ""
	cc.instructions = ""
}

func (cc *CartComposer) SetCustomerName(name string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.customerName = name
}

func (cc *CartComposer) SetInstructions(text string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.instructions = text
}

// Items returns the cart lines as order-item snapshots, in first-add order.
func (cc *CartComposer) Items() []models.OrderItem {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.itemsLocked()
}

func (cc *CartComposer) itemsLocked() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cc.lineOrder))
	for _, id := range cc.lineOrder {
		line := cc.lines[id]
		items = append(items, models.OrderItem{
			MenuItemID: line.item.ID,
			Name:       line.item.Name,
			Price:      line.item.Price,
			Quantity:   line.quantity,
		})
	}
	return items
}

// Total sums the cart for display.
func (cc *CartComposer) Total() float64 {
	var total float64
	for _, item := range cc.Items() {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CustomerName returns the current name field.
func (cc *CartComposer) CustomerName() string {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.customerName
}

// Instructions returns the current special-instructions field.
func (cc *CartComposer) Instructions() string {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.instructions
}

// Submit validates the cart and hands it to the order synchronizer. The
// ordering window is re-checked here, not just at add time: a cart built
// before the cutoff must not slip through after it. Success clears all local
// state; failure leaves it untouched.
func (cc *CartComposer) Submit(ctx context.Context) (string, error) {
	cc.mu.Lock()
	name := strings.TrimSpace(cc.customerName)
	items := cc.itemsLocked()
	instructions := cc.instructions
	cc.mu.Unlock()

	if name == "" {
		return "", ErrMissingCustomer
	}
	if len(items) == 0 {
		return "", ErrEmptyOrder
	}
	if !cc.window.Open(cc.closing()) {
		return "", ErrWindowClosed
	}

	id, err := cc.orders.Create(ctx, models.Order{
		CustomerName:        name,
		Items:               items,
		SpecialInstructions: instructions,
	})
	if err != nil {
		return "", err
	}

	cc.mu.Lock()
	cc.clearLocked()
	cc.mu.Unlock()
	return id, nil
}
