package models

import "fmt"

// Order statuses, in lifecycle order.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

var statusRank = map[string]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusCompleted: 3,
}

// OrderItem is a snapshot of a menu item captured at cart-add time.
// It is a copy, not a reference: later menu edits never touch it.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Order struct {
	ID                  string      `json:"id,omitempty"`
	CustomerName        string      `json:"customer_name"`
	Items               []OrderItem `json:"items"`
	SpecialInstructions string      `json:"special_instructions"`
	Timestamp           int64       `json:"timestamp"` // epoch millis; 0 = unknown
	Status              string      `json:"status"`
}

// Total derives the order total from its item snapshots.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CheckStatusTransition allows only forward movement through the lifecycle.
func CheckStatusTransition(from, to string) error {
	fromRank, ok := statusRank[from]
	if !ok {
		return fmt.Errorf("unknown order status %q", from)
	}
	toRank, ok := statusRank[to]
	if !ok {
		return fmt.Errorf("unknown order status %q", to)
	}
	if toRank <= fromRank {
		return fmt.Errorf("cannot move order from %q back to %q", from, to)
	}
	return nil
}
