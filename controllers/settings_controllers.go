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

type SettingsController struct {
	Settings *services.SettingsSynchronizer
}

func NewSettingsController(settings *services.SettingsSynchronizer) *SettingsController {
	return &SettingsController{Settings: settings}
}

// GetSettings returns every mirrored setting value.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current settings", sc.Settings.Values())
}

// UpdateSetting writes one setting through to the store.
func (sc *SettingsController) UpdateSetting(c *gin.Context) {
	id := c.Param("setting_id")
	if _, known := models.SettingDefaults()[id]; !known {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("unknown setting %q", id))
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Settings.Update(c.Request.Context(), id, body.Value); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Setting updated", gin.H{"id": id, "value": body.Value})
}
