package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/infrastructure/repositories/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newPreferenceRouter(owner domain.UserID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewPreferenceHandler(memory.NewMemoryPreferenceRepository())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", owner)
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.SetupRoutes(api)
	return router
}

func TestPreferenceHandler_SetAndGet(t *testing.T) {
	router := newPreferenceRouter("user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/preferences/default_layout",
		strings.NewReader(`{"value":"mosaic"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var setBody map[string]map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &setBody))
	assert.Equal(t, "default_layout", setBody["preference"]["key"])
	assert.Equal(t, "mosaic", setBody["preference"]["value"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/preferences/default_layout", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var getBody map[string]map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &getBody))
	assert.Equal(t, "mosaic", getBody["preference"]["value"])
}

func TestPreferenceHandler_ListReturnsStoredValues(t *testing.T) {
	router := newPreferenceRouter("user-1")

	for key, value := range map[string]string{
		"default_layout": "grid",
		"audio_mode":     "manual",
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPut, "/api/v1/preferences/"+key,
			strings.NewReader(`{"value":"`+value+`"}`))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/preferences", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Preferences []domain.Preference `json:"preferences"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Preferences, 2)
	for _, pref := range body.Preferences {
		assert.Equal(t, domain.UserID("user-1"), pref.UserID)
	}
}

func TestPreferenceHandler_SetRejectsBadInput(t *testing.T) {
	router := newPreferenceRouter("user-1")

	// missing value
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/preferences/default_layout",
		strings.NewReader(`{}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// invalid key
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPut, "/api/v1/preferences/bad%20key",
		strings.NewReader(`{"value":"x"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferenceHandler_DeleteRemovesPreference(t *testing.T) {
	router := newPreferenceRouter("user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/preferences/audio_mode",
		strings.NewReader(`{"value":"all"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/api/v1/preferences/audio_mode", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/preferences/audio_mode", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
