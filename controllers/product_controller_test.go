package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newProductTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// Binding-level cases only; invalid payloads must fail before any
	// service is touched.
	ctrl := NewProductController(nil, nil, nil)

	router := gin.New()
	router.POST("/admin/products", ctrl.CreateProduct)
	router.POST("/products/:id/stock", ctrl.CheckStock)
	router.POST("/products/:id/reduce-stock", ctrl.ReduceStock)
	return router
}

func TestCreateProductValidation(t *testing.T) {
	tests := map[string]struct {
		body string
	}{
		"negative tag bucket": {
			body: `{"name":"Rose","price":10,"stock":5,"tag_stock":[{"tag_id":"small","stock":-2}]}`,
		},
		"tag bucket without id": {
			body: `{"name":"Rose","price":10,"stock":5,"tag_stock":[{"stock":2}]}`,
		},
		"negative general stock": {
			body: `{"name":"Rose","price":10,"stock":-1}`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			router := newProductTestRouter()

			r := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewBufferString(tc.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestStockRequestValidation(t *testing.T) {
	router := newProductTestRouter()

	for name, path := range map[string]string{
		"stock check": "/products/rose/stock",
		"reduce":      "/products/rose/reduce-stock",
	} {
		t.Run(name+" rejects non-positive quantity", func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"quantity":-1}`))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
