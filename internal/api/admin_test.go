package api

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/shopfront/internal/order"
	"github.com/creamcroissant/shopfront/internal/session"
)

func TestAdminUpdateOrderStatusRejectedLocally(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, Order{})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"})

	// PAID -> DELIVERED skips the whole fulfillment chain.
	_, err := client.AdminUpdateOrderStatus(context.Background(), "o1", order.StatusPaid, order.StatusDelivered)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, int32(0), calls.Load(), "disallowed transition must not reach the network")

	// Terminal statuses offer nothing.
	_, err = client.AdminUpdateOrderStatus(context.Background(), "o1", order.StatusCancelled, order.StatusPaid)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, int32(0), calls.Load())
}

func TestAdminUpdateOrderStatusBackendConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /admin/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		// Another admin moved the order first.
		writeJSON(w, http.StatusConflict, map[string]string{"message": "order already shipped"})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"})

	// PROCESSING -> CANCELLED passes the local gate, then the backend wins.
	_, err := client.AdminUpdateOrderStatus(context.Background(), "o1", order.StatusProcessing, order.StatusCancelled)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "order already shipped", apiErr.Message)
}

func TestAdminUpdateOrderStatusAllowed(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /admin/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		writeJSON(w, http.StatusOK, Order{ID: "o1", Status: order.StatusShipped})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"})

	updated, err := client.AdminUpdateOrderStatus(context.Background(), "o1", order.StatusProcessing, order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)
	assert.JSONEq(t, `{"status":"SHIPPED"}`, gotBody)
}
