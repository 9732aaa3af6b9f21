package http

import (
	"net/http"
	"strconv"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"
	apperrors "streamgrid/pkg/errors"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService ports.SessionService
	audioService   ports.AudioService
	layoutService  ports.LayoutService
	resolveService ports.ResolveService
}

func NewSessionHandler(
	sessionService ports.SessionService,
	audioService ports.AudioService,
	layoutService ports.LayoutService,
	resolveService ports.ResolveService,
) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		audioService:   audioService,
		layoutService:  layoutService,
		resolveService: resolveService,
	}
}

func (h *SessionHandler) SetupRoutes(api *gin.RouterGroup) {
	api.POST("/sessions", h.CreateSession)
	api.GET("/sessions", h.ListSessions)
	api.GET("/sessions/:id", h.GetSession)
	api.DELETE("/sessions/:id", h.CloseSession)
	api.PUT("/sessions/:id/layout", h.SetLayout)
	api.GET("/sessions/:id/frames", h.GetFrames)
	api.GET("/sessions/:id/embeds", h.GetEmbedURLs)

	api.PUT("/sessions/:id/slots/:index", h.AssignSlot)
	api.DELETE("/sessions/:id/slots/:index", h.ClearSlot)
	api.POST("/sessions/:id/slots/:index/retry", h.RetrySlot)
	api.POST("/sessions/:id/slots/:index/ready", h.MarkSlotReady)
	api.POST("/sessions/:id/slots/:index/error", h.MarkSlotError)
	api.PUT("/sessions/:id/slots/:index/muted", h.SetSlotMuted)

	api.PUT("/sessions/:id/audio/mode", h.SetAudioMode)
	api.PUT("/sessions/:id/audio/focus", h.SetAudioFocus)

	api.POST("/resolve", h.ResolveStream)
	api.GET("/layouts/bento-templates", h.ListBentoTemplates)
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		Name      string              `json:"name" binding:"required,min=1,max=100"`
		Layout    domain.LayoutConfig `json:"layout"`
		SlotCount int                 `json:"slot_count" binding:"min=0,max=64"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), ownerFromContext(c), req.Name, req.Layout, req.SlotCount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(c.Request.Context(), ownerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
	})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))

	session, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) CloseSession(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))

	if err := h.sessionService.CloseSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "closed",
	})
}

func (h *SessionHandler) SetLayout(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))

	var req struct {
		Layout domain.LayoutConfig `json:"layout" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.SetLayout(c.Request.Context(), sessionID, req.Layout)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) GetFrames(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))

	width, err := strconv.ParseFloat(c.DefaultQuery("width", "1920"), 64)
	if err != nil || width <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width must be a positive number"})
		return
	}
	height, err := strconv.ParseFloat(c.DefaultQuery("height", "1080"), 64)
	if err != nil || height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height must be a positive number"})
		return
	}

	frames, err := h.layoutService.Frames(c.Request.Context(), sessionID, width, height)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"frames": frames,
	})
}

func (h *SessionHandler) GetEmbedURLs(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))

	embeds, err := h.layoutService.EmbedURLs(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"embeds": embeds,
	})
}

func (h *SessionHandler) AssignSlot(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))
	index, ok := slotIndex(c)
	if !ok {
		return
	}

	var req struct {
		URL string `json:"url" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := h.resolveService.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	session, err := h.sessionService.AssignSlot(c.Request.Context(), sessionID, index, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) ClearSlot(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))
	index, ok := slotIndex(c)
	if !ok {
		return
	}

	session, err := h.sessionService.ClearSlot(c.Request.Context(), sessionID, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) RetrySlot(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))
	index, ok := slotIndex(c)
	if !ok {
		return
	}

	if err := h.sessionService.RetrySlot(c.Request.Context(), sessionID, index); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "retrying",
	})
}

func (h *SessionHandler) MarkSlotReady(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))
	index, ok := slotIndex(c)
	if !ok {
		return
	}

	if err := h.sessionService.MarkSlotReady(c.Request.Context(), sessionID, index); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

func (h *SessionHandler) MarkSlotError(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))
	index, ok := slotIndex(c)
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message" binding:"required,max=500"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionService.MarkSlotError(c.Request.Context(), sessionID, index, req.Message); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "error_recorded",
	})
}

func (h *SessionHandler) SetSlotMuted(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))
	index, ok := slotIndex(c)
	if !ok {
		return
	}

	var req struct {
		Muted *bool `json:"muted" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.audioService.SetSlotMuted(c.Request.Context(), sessionID, index, *req.Muted)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) SetAudioMode(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))

	var req struct {
		Mode domain.AudioMode `json:"mode" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.audioService.SetMode(c.Request.Context(), sessionID, req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) SetAudioFocus(c *gin.Context) {
	sessionID := domain.SessionID(c.Param("id"))

	var req struct {
		SlotIndex *int `json:"slot_index" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.audioService.SetFocus(c.Request.Context(), sessionID, *req.SlotIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
	})
}

func (h *SessionHandler) ResolveStream(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := h.resolveService.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stream": ref,
	})
}

func (h *SessionHandler) ListBentoTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"templates": h.layoutService.BentoTemplates(),
	})
}

func slotIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot index must be a non-negative integer"})
		return 0, false
	}
	return index, true
}

func ownerFromContext(c *gin.Context) domain.UserID {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(domain.UserID); ok {
			return id
		}
	}
	return ""
}

func respondError(c *gin.Context, err error) {
	appErr := apperrors.Get(err)
	if appErr == nil {
		appErr = apperrors.FromDomain(err)
	}
	c.JSON(appErr.HTTPStatus, gin.H{
		"error":   string(appErr.Code),
		"message": appErr.Message,
	})
}
