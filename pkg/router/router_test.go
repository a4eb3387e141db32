package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dukaan/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/products", "products.index", ok)
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.index")
	require.True(t, found)
	assert.Equal(t, "/products", path)

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/products/42", url)

	_, found = r.Path("missing")
	assert.False(t, found)
}

func TestGroupPrefixing(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/cart", "cart.show", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)

	infos := r.Routes()
	require.Len(t, infos, 2)

	methods := map[string]string{}
	for _, ri := range infos {
		methods[ri.Name] = ri.Method
	}
	assert.Equal(t, http.MethodGet, methods["a"])
	assert.Equal(t, http.MethodPost, methods["b"])
}

func TestMiddlewareOrder(t *testing.T) {
	r := router.New()

	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r.Use(mw("outer"), mw("inner"))
	r.Get("/x", "x", ok)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"outer", "inner"}, order)
}
