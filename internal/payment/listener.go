// Package payment captures the gateway's browser redirect after checkout.
// The client passes a localhost return URL in the checkout request; the
// gateway sends the user's browser back here once payment settles.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Result is what the gateway reports on return.
type Result struct {
	OrderID string
	Status  string
}

// Succeeded reports whether the gateway marked the payment as completed.
func (r Result) Succeeded() bool {
	return r.Status == "success" || r.Status == "paid"
}

// Listener is a one-shot localhost HTTP listener for the payment return.
type Listener struct {
	server   *http.Server
	listener net.Listener
	log      *slog.Logger
	results  chan Result
}

// Listen binds the return listener. addr may use port 0 to let the OS pick.
func Listen(addr string, log *slog.Logger) (*Listener, error) {
	if log == nil {
		log = slog.Default()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for payment return: %w", err)
	}

	l := &Listener{
		listener: ln,
		log:      log,
		results:  make(chan Result, 1),
	}

	r := chi.NewRouter()
	r.Get("/payment/return", l.handleReturn)

	l.server = &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := l.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Warn("payment return listener stopped", "error", err)
		}
	}()
	return l, nil
}

// URL is the return URL to hand to the checkout call.
func (l *Listener) URL() string {
	return fmt.Sprintf("http://%s/payment/return", l.listener.Addr().String())
}

func (l *Listener) handleReturn(w http.ResponseWriter, r *http.Request) {
	result := Result{
		OrderID: r.URL.Query().Get("orderId"),
		Status:  r.URL.Query().Get("status"),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><p>Payment recorded. You can close this window and return to the terminal.</p></body></html>")

	select {
	case l.results <- result:
	default:
		// A second redirect for the same checkout is ignored.
	}
}

// Wait blocks until the gateway redirects or ctx expires.
func (l *Listener) Wait(ctx context.Context) (Result, error) {
	select {
	case result := <-l.results:
		return result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Close shuts the listener down.
func (l *Listener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.server.Shutdown(ctx)
}
