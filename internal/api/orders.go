package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// CheckoutInput selects cart lines and delivery details for a new order.
type CheckoutInput struct {
	ItemIDs      []string `json:"itemIds"`
	Address      Address  `json:"address"`
	DeliveryDate string   `json:"deliveryDate"`
	DeliverySlot string   `json:"deliverySlot"`
	ReturnURL    string   `json:"returnUrl,omitempty"`
}

// Checkout validates the shipping address, then places the order. The
// request carries an idempotency key so a dropped response cannot charge
// twice. An undeliverable address fails before the order call.
func (c *Client) Checkout(ctx context.Context, input CheckoutInput) (CheckoutResult, error) {
	if len(input.ItemIDs) == 0 {
		return CheckoutResult{}, fmt.Errorf("api: no cart items selected")
	}

	quote, err := c.ValidateAddress(ctx, input.Address)
	if err != nil {
		return CheckoutResult{}, err
	}
	if !quote.Deliverable {
		reason := quote.Reason
		if reason == "" {
			reason = "address is not deliverable"
		}
		return CheckoutResult{}, &APIError{Status: http.StatusUnprocessableEntity, Message: reason}
	}

	headers := http.Header{}
	headers.Set("Idempotency-Key", uuid.NewString())

	var result CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/orders/checkout", input, &result, headers); err != nil {
		return CheckoutResult{}, err
	}
	return result, nil
}

// ListMyOrders returns one page of the current user's orders.
func (c *Client) ListMyOrders(ctx context.Context, page int) (OrderPage, error) {
	path := "/orders"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	var orders OrderPage
	if err := c.get(ctx, path, &orders); err != nil {
		return OrderPage{}, err
	}
	return orders, nil
}

// GetOrder returns one of the current user's orders.
func (c *Client) GetOrder(ctx context.Context, id string) (Order, error) {
	if id == "" {
		return Order{}, fmt.Errorf("api: order id is required")
	}
	var o Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(id), &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// CancelOrder asks the backend to cancel the order. The backend enforces
// the transition rule; its rejection is surfaced as-is.
func (c *Client) CancelOrder(ctx context.Context, id string) (Order, error) {
	var o Order
	if err := c.post(ctx, "/orders/"+url.PathEscape(id)+"/cancel", nil, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ConfirmDelivery marks a shipped order as delivered. This is the customer
// action; admins have no SHIPPED transition.
func (c *Client) ConfirmDelivery(ctx context.Context, id string) (Order, error) {
	var o Order
	if err := c.post(ctx, "/orders/"+url.PathEscape(id)+"/confirm-delivery", nil, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}
