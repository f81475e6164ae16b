package api

import (
	"context"
	"fmt"
	"net/url"
)

// GetCart returns the current user's cart.
func (c *Client) GetCart(ctx context.Context) (Cart, error) {
	var cart Cart
	if err := c.get(ctx, "/cart", &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// AddToCart puts quantity units of a product into the cart.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (Cart, error) {
	if productID == "" {
		return Cart{}, fmt.Errorf("api: product id is required")
	}
	if quantity <= 0 {
		return Cart{}, ErrQuantityInvalid
	}
	var cart Cart
	err := c.post(ctx, "/cart/items", map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}, &cart)
	if err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// UpdateCartItem changes the quantity of an existing cart line.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, ErrQuantityInvalid
	}
	var cart Cart
	err := c.put(ctx, "/cart/items/"+url.PathEscape(itemID), map[string]any{
		"quantity": quantity,
	}, &cart)
	if err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// RemoveCartItem deletes one line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (Cart, error) {
	var cart Cart
	if err := c.delete(ctx, "/cart/items/"+url.PathEscape(itemID), &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.delete(ctx, "/cart", nil)
}
