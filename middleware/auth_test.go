package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEditorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string, setRole bool) *gin.Engine {
		router := gin.New()
		router.GET("/admin/carts",
			func(c *gin.Context) {
				if setRole {
					c.Set("user_role", role)
				}
			},
			EditorMiddleware(),
			func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) },
		)
		return router
	}

	tests := map[string]struct {
		role     string
		setRole  bool
		wantCode int
	}{
		"admin allowed":     {"admin", true, http.StatusOK},
		"editor allowed":    {"editor", true, http.StatusOK},
		"customer rejected": {"customer", true, http.StatusUnauthorized},
		"no role rejected":  {"", false, http.StatusUnauthorized},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin/carts", nil)
			w := httptest.NewRecorder()
			newRouter(tc.role, tc.setRole).ServeHTTP(w, r)

			if w.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d", w.Code, tc.wantCode)
			}
		})
	}
}
