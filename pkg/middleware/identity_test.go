package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storypad/pkg/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestIdentityMiddleware_NoCookie(t *testing.T) {
	identityService := identity.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(IdentityMiddleware(identityService))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"identity": c.GetString(IdentityKey)})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "identity")

	cookies := w.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == "storypad_visitor" {
			found = true
			assert.NotEmpty(t, cookie.Value)
		}
	}
	assert.True(t, found, "expected an identity cookie to be set")
}

func TestIdentityMiddleware_ValidCookie(t *testing.T) {
	identityService := identity.NewService("test-secret-key")
	token, visitorID, err := identityService.Issue()
	assert.NoError(t, err)

	router := setupTestRouter()
	router.Use(IdentityMiddleware(identityService))

	var resolved string
	router.GET("/test", func(c *gin.Context) {
		resolved = c.GetString(IdentityKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: "storypad_visitor", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, visitorID, resolved)
}

func TestIdentityMiddleware_TamperedCookie(t *testing.T) {
	identityService := identity.NewService("test-secret-key")
	other := identity.NewService("other-secret-key")
	token, visitorID, err := other.Issue()
	assert.NoError(t, err)

	router := setupTestRouter()
	router.Use(IdentityMiddleware(identityService))

	var resolved string
	router.GET("/test", func(c *gin.Context) {
		resolved = c.GetString(IdentityKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: "storypad_visitor", Value: token})
	router.ServeHTTP(w, req)

	// A token signed with the wrong key yields a fresh identity, never the
	// claimed one.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resolved)
	assert.NotEqual(t, visitorID, resolved)
}
