package http

import (
	"net/http"
	"time"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
	"streamgrid/pkg/validation"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler exposes per-user settings such as the preferred layout,
// default audio mode, or saved channel lists as flat key/value pairs.
type PreferenceHandler struct {
	prefs ports.PreferenceRepository
}

func NewPreferenceHandler(prefs ports.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

func (h *PreferenceHandler) SetupRoutes(api *gin.RouterGroup) {
	api.GET("/preferences", h.ListPreferences)
	api.GET("/preferences/:key", h.GetPreference)
	api.PUT("/preferences/:key", h.SetPreference)
	api.DELETE("/preferences/:key", h.DeletePreference)
}

func (h *PreferenceHandler) ListPreferences(c *gin.Context) {
	prefs, err := h.prefs.List(c.Request.Context(), ownerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preferences": prefs,
	})
}

func (h *PreferenceHandler) GetPreference(c *gin.Context) {
	key := c.Param("key")
	if err := validation.ValidatePreferenceKey(key); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.prefs.Get(c.Request.Context(), ownerFromContext(c), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preference": pref,
	})
}

func (h *PreferenceHandler) SetPreference(c *gin.Context) {
	key := c.Param("key")
	if err := validation.ValidatePreferenceKey(key); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Value string `json:"value" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidatePreferenceValue(req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref := domain.Preference{
		UserID:    ownerFromContext(c),
		Key:       key,
		Value:     req.Value,
		UpdatedAt: time.Now(),
	}

	if err := h.prefs.Set(c.Request.Context(), pref); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"preference": pref,
	})
}

func (h *PreferenceHandler) DeletePreference(c *gin.Context) {
	key := c.Param("key")
	if err := validation.ValidatePreferenceKey(key); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.prefs.Delete(c.Request.Context(), ownerFromContext(c), key); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "deleted",
	})
}
