package api

import (
	"context"
	"fmt"
	"strings"
)

// ValidateAddress asks the backend whether an address is deliverable and
// what shipping costs. Checkout calls this before placing the order.
func (c *Client) ValidateAddress(ctx context.Context, addr Address) (ShippingQuote, error) {
	if strings.TrimSpace(addr.Line1) == "" || strings.TrimSpace(addr.City) == "" {
		return ShippingQuote{}, fmt.Errorf("api: address line and city are required")
	}
	var quote ShippingQuote
	if err := c.post(ctx, "/shipping/validate-address", addr, &quote); err != nil {
		return ShippingQuote{}, err
	}
	return quote, nil
}
