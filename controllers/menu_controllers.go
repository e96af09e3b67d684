package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/services"
	"github.com/kmuchiri/jikoni-orders/store"
	"github.com/kmuchiri/jikoni-orders/utils"
)

// respondMenuError maps a missing id to 404; everything else is a store
// failure.
func respondMenuError(c *gin.Context, id string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no menu item %q", id))
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}

type MenuController struct {
	Menu *services.MenuSynchronizer
}

func NewMenuController(menu *services.MenuSynchronizer) *MenuController {
	return &MenuController{Menu: menu}
}

// GetAllMenuItems
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of menu items", mc.Menu.Items())
}

// CreateMenuItem
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if item.Name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	if item.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price cannot be negative"))
		return
	}

	id, err := mc.Menu.Add(c.Request.Context(), item)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", gin.H{"id": id})
}

// UpdateMenuItem
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id := c.Param("item_id")

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if item.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price cannot be negative"))
		return
	}

	if err := mc.Menu.Update(c.Request.Context(), id, item); err != nil {
		respondMenuError(c, id, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", gin.H{"id": id})
}

// DeleteMenuItem
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id := c.Param("item_id")
	if err := mc.Menu.Remove(c.Request.Context(), id); err != nil {
		respondMenuError(c, id, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": id})
}

// SetAvailability flips one item's availability flag.
func (mc *MenuController) SetAvailability(c *gin.Context) {
	id := c.Param("item_id")

	var body struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.Menu.SetAvailability(c.Request.Context(), id, *body.Available); err != nil {
		respondMenuError(c, id, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability updated", gin.H{"id": id, "available": *body.Available})
}

// BulkSetAvailability marks the whole menu available or unavailable in one
// batch.
func (mc *MenuController) BulkSetAvailability(c *gin.Context) {
	var body struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.Menu.BulkSetAvailability(c.Request.Context(), *body.Available); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability updated for all items", gin.H{"available": *body.Available})
}
