package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/shopfront/internal/session"
)

func TestListProductsCached(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, ProductPage{
			Items: []Product{{ID: "p1", Name: "Apples", Price: 350, Currency: "USD"}},
			Page:  1, Total: 1,
		})
	})

	client, _ := newTestClient(t, mux, session.Credentials{})
	ctx := context.Background()

	first, err := client.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	second, err := client.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load(), "second read comes from the cache")

	// A different filter is a different cache key.
	_, err = client.ListProducts(ctx, ProductFilter{Search: "pears"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestProductDescriptionSanitized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Product{
			ID:          "p1",
			Name:        "Apples <script>alert(1)</script>",
			Description: "<p>Fresh <b>red</b> apples</p>",
		})
	})

	client, _ := newTestClient(t, mux, session.Credentials{})
	p, err := client.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Apples", p.Name)
	assert.Equal(t, "Fresh red apples", p.Description)
}

func TestAdminMutationFlushesCatalogCache(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, ProductPage{Total: int(hits.Load())})
	})
	mux.HandleFunc("POST /admin/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, Product{ID: "p2"})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"})
	ctx := context.Background()

	_, err := client.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)

	_, err = client.AdminCreateProduct(ctx, ProductInput{Name: "Pears", Price: 420})
	require.NoError(t, err)

	page, err := client.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total, "listing after a mutation goes back to the backend")
	assert.Equal(t, int32(2), hits.Load())
}
