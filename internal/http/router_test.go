package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRouter(t *testing.T) {
	t.Run("always serves health and ping", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := NewRouter(RouterConfig{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skips routes without a backing store", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := NewRouter(RouterConfig{})

		for _, path := range []string{
			"/api/dictionary/search",
			"/api/favorites",
			"/api/mistakes",
			"/api/records",
			"/api/quiz/question",
		} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", path, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
		}
	})

	t.Run("registers routes for configured stores", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := NewRouter(RouterConfig{
			Dictionary: &fakeDictionaryStore{},
			Favorites:  &fakeFavoritesStore{},
			Mistakes:   &fakeMistakesStore{},
			Records:    &fakeRecordsStore{},
		})

		for _, path := range []string{
			"/api/favorites",
			"/api/mistakes",
			"/api/records",
			"/api/records/stats",
		} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", path, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}
