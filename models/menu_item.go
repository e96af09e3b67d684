package models

// Collection names in the document store.
const (
	MenuCollection     = "menuItems"
	OrdersCollection   = "orders"
	SettingsCollection = "settings"
)

type MenuItem struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
}
