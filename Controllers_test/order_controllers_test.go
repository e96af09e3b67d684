package Controllers_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmuchiri/jikoni-orders/models"
)

func placeOrder(t *testing.T, app *testApp, customer string) string {
	t.Helper()
	item := app.menu.Items()[0]

	w := app.do(t, "POST", "/cart/items", map[string]string{"menu_item_id": item.ID}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "POST", "/cart/submit", map[string]string{
		"customer_name":        customer,
		"special_instructions": "",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var placed struct {
		OrderID string `json:"order_id"`
	}
	decodeData(t, w, &placed)
	require.NotEmpty(t, placed.OrderID)
	return placed.OrderID
}

func TestCartFlowPlacesOrder(t *testing.T) {
	app := newTestApp(t)
	id := placeOrder(t, app, "Wanjiku")

	order, ok := app.orders.OrderByID(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "Wanjiku", order.CustomerName)
	require.Len(t, order.Items, 1)

	// Cart is cleared after submit.
	w := app.do(t, "GET", "/cart", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart struct {
		Items []models.OrderItem `json:"items"`
	}
	decodeData(t, w, &cart)
	assert.Empty(t, cart.Items)
}

func TestCartSubmitRequiresName(t *testing.T) {
	app := newTestApp(t)
	item := app.menu.Items()[0]

	w := app.do(t, "POST", "/cart/items", map[string]string{"menu_item_id": item.ID}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "POST", "/cart/submit", map[string]string{"customer_name": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartRejectsUnavailableItem(t *testing.T) {
	app := newTestApp(t)
	headers := app.login(t)

	id := app.menu.Items()[0].ID
	w := app.do(t, "PATCH", "/admin/menu/"+id+"/availability", map[string]interface{}{"available": false}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "POST", "/cart/items", map[string]string{"menu_item_id": id}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartRejectsUnknownItem(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, "POST", "/cart/items", map[string]string{"menu_item_id": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderStatusLifecycle(t *testing.T) {
	app := newTestApp(t)
	headers := app.login(t)
	id := placeOrder(t, app, "Otieno")

	w := app.do(t, "PATCH", "/admin/orders/"+id+"/status", map[string]string{"status": models.StatusPreparing}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	// Backwards transition is refused.
	w = app.do(t, "PATCH", "/admin/orders/"+id+"/status", map[string]string{"status": models.StatusPending}, headers)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown status is refused before touching the synchronizer.
	w = app.do(t, "PATCH", "/admin/orders/"+id+"/status", map[string]string{"status": "burnt"}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	order, _ := app.orders.OrderByID(id)
	assert.Equal(t, models.StatusPreparing, order.Status)
}

func TestOrderDelete(t *testing.T) {
	app := newTestApp(t)
	headers := app.login(t)
	id := placeOrder(t, app, "Njeri")

	w := app.do(t, "DELETE", "/admin/orders/"+id, nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, app.orders.Orders())
}

func TestOrdersExportCSV(t *testing.T) {
	app := newTestApp(t)
	headers := app.login(t)
	placeOrder(t, app, "Wanjiku")

	w := app.do(t, "GET", "/admin/orders/export", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Wanjiku", rows[1][1])
}
