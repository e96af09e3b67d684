package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmuchiri/jikoni-orders/services"
)

func cartContext(session string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/cart", nil)
	if session != "" {
		c.Request.AddCookie(&http.Cookie{Name: cartCookie, Value: session})
	}
	return c
}

func TestCartSessionsExpire(t *testing.T) {
	gin.SetMode(gin.TestMode)

	current := time.Date(2024, time.March, 12, 10, 0, 0, 0, time.Local)
	cc := NewCartController(nil, func() *services.CartComposer {
		return services.NewCartComposer(nil, services.NewOrderingWindow(), func() string { return "23:59" })
	})
	cc.now = func() time.Time { return current }

	first := cc.composerFor(cartContext("s1"))
	require.Len(t, cc.carts, 1)

	// Touching the session within the TTL keeps the same cart.
	current = current.Add(cartTTL / 2)
	assert.Same(t, first, cc.composerFor(cartContext("s1")))

	// An unrelated request after the TTL sweeps the idle session out.
	current = current.Add(cartTTL + time.Minute)
	cc.composerFor(cartContext("s2"))
	require.Len(t, cc.carts, 1)
	_, ok := cc.carts["s1"]
	assert.False(t, ok)

	// Coming back with the stale cookie starts a fresh cart.
	assert.NotSame(t, first, cc.composerFor(cartContext("s1")))
}
