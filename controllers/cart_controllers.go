package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/services"
	"github.com/kmuchiri/jikoni-orders/utils"
)

const (
	cartCookie = "cart_session"

	// cartTTL bounds how long an idle session cart is kept. Ordering is a
	// same-day affair, so anything untouched this long is abandoned.
	cartTTL = 12 * time.Hour
)

type cartEntry struct {
	composer *services.CartComposer
	lastSeen time.Time
}

// CartController owns one CartComposer per browser session, keyed by a
// session cookie. Carts are never persisted; they live only between add and
// submit-or-clear, and idle sessions are swept after cartTTL.
type CartController struct {
	Menu *services.MenuSynchronizer

	newComposer func() *services.CartComposer
	now         func() time.Time

	mu    sync.Mutex
	carts map[string]*cartEntry
}

func NewCartController(menu *services.MenuSynchronizer, newComposer func() *services.CartComposer) *CartController {
	return &CartController{
		Menu:        menu,
		newComposer: newComposer,
		now:         time.Now,
		carts:       make(map[string]*cartEntry),
	}
}

func (cc *CartController) composerFor(c *gin.Context) *services.CartComposer {
	session, err := c.Cookie(cartCookie)
	if err != nil || session == "" {
		session = uuid.NewString()
		c.SetCookie(cartCookie, session, 0, "/", "", false, true)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	now := cc.now()
	for key, entry := range cc.carts {
		if now.Sub(entry.lastSeen) > cartTTL {
			delete(cc.carts, key)
		}
	}

	entry, ok := cc.carts[session]
	if !ok {
		entry = &cartEntry{composer: cc.newComposer()}
		cc.carts[session] = entry
	}
	entry.lastSeen = now
	return entry.composer
}

type cartView struct {
	Items               []models.OrderItem `json:"items"`
	CustomerName        string             `json:"customer_name"`
	SpecialInstructions string             `json:"special_instructions"`
	Total               float64            `json:"total"`
	TotalDisplay        string             `json:"total_display"`
}

func viewOf(composer *services.CartComposer) cartView {
	total := composer.Total()
	return cartView{
		Items:               composer.Items(),
		CustomerName:        composer.CustomerName(),
		SpecialInstructions: composer.Instructions(),
		Total:               total,
		TotalDisplay:        utils.FormatCurrencyKES(total),
	}
}

// GetCart
func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current cart", viewOf(cc.composerFor(c)))
}

// AddItem snapshots a menu item into the session cart.
func (cc *CartController) AddItem(c *gin.Context) {
	var body struct {
		MenuItemID string `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, ok := cc.Menu.ItemByID(body.MenuItemID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no menu item %q", body.MenuItemID))
		return
	}

	composer := cc.composerFor(c)
	err := composer.AddItem(item)
	switch {
	case errors.Is(err, services.ErrWindowClosed):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrItemUnavailable):
		utils.RespondError(c, http.StatusConflict, err)
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.RespondJSON(c, http.StatusOK, "Item added to cart", viewOf(composer))
	}
}

// RemoveItem decrements one item from the session cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	composer := cc.composerFor(c)
	if err := composer.RemoveItem(c.Param("item_id")); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", viewOf(composer))
}

// ClearCart
func (cc *CartController) ClearCart(c *gin.Context) {
	composer := cc.composerFor(c)
	composer.Clear()
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", viewOf(composer))
}

// Submit turns the session cart into an order. Validation errors come back
// without any store write; a store failure leaves the cart intact for retry.
func (cc *CartController) Submit(c *gin.Context) {
	var body struct {
		CustomerName        string `json:"customer_name"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	composer := cc.composerFor(c)
	composer.SetCustomerName(body.CustomerName)
	composer.SetInstructions(body.SpecialInstructions)

	id, err := composer.Submit(c.Request.Context())
	switch {
	case errors.Is(err, services.ErrMissingCustomer), errors.Is(err, services.ErrEmptyOrder):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrWindowClosed):
		utils.RespondError(c, http.StatusForbidden, err)
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.RespondJSON(c, http.StatusCreated, "Order placed", gin.H{"order_id": id})
	}
}
