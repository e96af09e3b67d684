package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/router"
	"github.com/kmuchiri/jikoni-orders/services"
	"github.com/kmuchiri/jikoni-orders/store/gormstore"
	"github.com/kmuchiri/jikoni-orders/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration runs the main flow against the persistent store:
// 0. Seed menu on first start, login -> token
// 1. Customer fills a cart and submits before the cutoff
// 2. Admin walks the order through preparing -> ready -> completed
// 3. Admin exports the order list
func TestEndToEndIntegration(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	docStore, err := gormstore.Open(db)
	require.NoError(t, err)
	defer docStore.Close()

	ctx := context.Background()

	settings := services.NewSettingsSynchronizer(docStore.Collection(models.SettingsCollection))
	settings.Start(ctx)
	defer settings.Stop()

	menu := services.NewMenuSynchronizer(docStore.Collection(models.MenuCollection), models.DefaultCatalog())
	menu.Start(ctx)
	defer menu.Stop()

	orders := services.NewOrderSynchronizer(docStore.Collection(models.OrdersCollection))
	orders.Start(ctx)
	defer orders.Stop()

	window := &services.OrderingWindow{Now: func() time.Time {
		return time.Date(2024, time.March, 12, 11, 30, 0, 0, time.Local)
	}}
	closing := func() string { return settings.Value(models.SettingOrderClosingTime) }

	r := router.SetupRouter(router.Deps{
		Menu:     menu,
		Orders:   orders,
		Settings: settings,
		Gate:     services.NewAuthGate("integration-secret"),
		NewComposer: func() *services.CartComposer {
			return services.NewCartComposer(orders, window, closing)
		},
	})

	// Seeding happened on first start.
	require.Len(t, menu.Items(), 21)

	// Login
	token := doJSON(t, r, nil, "POST", "/admin/login",
		map[string]string{"secret": "integration-secret"}, http.StatusOK)["token"].(string)
	auth := map[string]string{"Authorization": "Bearer " + token}

	// Customer: add two of one dish, submit.
	item := menu.Items()[0]
	cookies := []*http.Cookie{}
	cookies = doCart(t, r, cookies, "POST", "/cart/items", map[string]string{"menu_item_id": item.ID}, http.StatusOK)
	cookies = doCart(t, r, cookies, "POST", "/cart/items", map[string]string{"menu_item_id": item.ID}, http.StatusOK)

	w := request(t, r, "POST", "/cart/submit", map[string]string{"customer_name": "Wanjiku"}, nil, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, orders.Orders(), 1)
	order := orders.Orders()[0]
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Admin: walk the status lifecycle.
	for _, status := range []string{models.StatusPreparing, models.StatusReady, models.StatusCompleted} {
		w := request(t, r, "PATCH", "/admin/orders/"+order.ID+"/status",
			map[string]string{"status": status}, auth, nil)
		require.Equal(t, http.StatusOK, w.Code, status)
	}
	final, _ := orders.OrderByID(order.ID)
	assert.Equal(t, models.StatusCompleted, final.Status)

	// Export contains the order.
	w = request(t, r, "GET", "/admin/orders/export", nil, auth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wanjiku")
	assert.Contains(t, w.Body.String(), item.Name)
}

func request(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, r *gin.Engine, cookies []*http.Cookie, method, path string, body interface{}, wantCode int) map[string]interface{} {
	t.Helper()
	w := request(t, r, method, path, body, nil, cookies)
	require.Equal(t, wantCode, w.Code, w.Body.String())

	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func doCart(t *testing.T, r *gin.Engine, cookies []*http.Cookie, method, path string, body interface{}, wantCode int) []*http.Cookie {
	t.Helper()
	w := request(t, r, method, path, body, nil, cookies)
	require.Equal(t, wantCode, w.Code, w.Body.String())
	return append(cookies, w.Result().Cookies()...)
}
