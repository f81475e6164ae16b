package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/creamcroissant/shopfront/internal/order"
)

// AdminOrderFilter narrows the back-office order listing.
type AdminOrderFilter struct {
	Status order.Status
	Page   int
}

// AdminListOrders returns one page of all orders.
func (c *Client) AdminListOrders(ctx context.Context, filter AdminOrderFilter) (OrderPage, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	path := "/admin/orders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var orders OrderPage
	if err := c.get(ctx, path, &orders); err != nil {
		return OrderPage{}, err
	}
	return orders, nil
}

// AdminGetOrder returns any order by id.
func (c *Client) AdminGetOrder(ctx context.Context, id string) (Order, error) {
	if id == "" {
		return Order{}, fmt.Errorf("api: order id is required")
	}
	var o Order
	if err := c.get(ctx, "/admin/orders/"+url.PathEscape(id), &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// AdminUpdateOrderStatus moves an order to a new status. The transition is
// gated by the local table first, so a disallowed target never produces a
// network call; the backend still enforces the same rule authoritatively and
// a rejection (lost race, rule drift) comes back as an *APIError.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, id string, current, target order.Status) (Order, error) {
	if err := order.CheckTransition(current, target); err != nil {
		return Order{}, err
	}
	var o Order
	err := c.put(ctx, "/admin/orders/"+url.PathEscape(id)+"/status", map[string]string{
		"status": string(target),
	}, &o)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// ProductInput is the admin create/update payload for a product.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	CategoryID  string `json:"categoryId"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// AdminCreateProduct adds a catalog entry.
func (c *Client) AdminCreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var p Product
	if err := c.post(ctx, "/admin/products", input, &p); err != nil {
		return Product{}, err
	}
	c.catalog.Flush(ctx)
	return p, nil
}

// AdminUpdateProduct replaces a catalog entry.
func (c *Client) AdminUpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error) {
	var p Product
	if err := c.put(ctx, "/admin/products/"+url.PathEscape(id), input, &p); err != nil {
		return Product{}, err
	}
	c.catalog.Flush(ctx)
	return p, nil
}

// AdminDeleteProduct removes a catalog entry.
func (c *Client) AdminDeleteProduct(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/admin/products/"+url.PathEscape(id), nil); err != nil {
		return err
	}
	c.catalog.Flush(ctx)
	return nil
}

// AdminCreateCategory adds a category.
func (c *Client) AdminCreateCategory(ctx context.Context, name, slug string) (Category, error) {
	var cat Category
	err := c.post(ctx, "/admin/categories", map[string]string{
		"name": name,
		"slug": slug,
	}, &cat)
	if err != nil {
		return Category{}, err
	}
	c.catalog.Flush(ctx)
	return cat, nil
}

// AdminUpdateCategory renames a category or changes its slug.
func (c *Client) AdminUpdateCategory(ctx context.Context, id, name, slug string) (Category, error) {
	var cat Category
	err := c.put(ctx, "/admin/categories/"+url.PathEscape(id), map[string]string{
		"name": name,
		"slug": slug,
	}, &cat)
	if err != nil {
		return Category{}, err
	}
	c.catalog.Flush(ctx)
	return cat, nil
}

// AdminDeleteCategory removes a category.
func (c *Client) AdminDeleteCategory(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/admin/categories/"+url.PathEscape(id), nil); err != nil {
		return err
	}
	c.catalog.Flush(ctx)
	return nil
}

// AdminListUsers returns one page of registered users.
func (c *Client) AdminListUsers(ctx context.Context, page int) ([]User, error) {
	path := "/admin/users"
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}
	var users []User
	if err := c.get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminSetUserBlocked blocks or unblocks an account.
func (c *Client) AdminSetUserBlocked(ctx context.Context, id string, blocked bool) (User, error) {
	var u User
	err := c.put(ctx, "/admin/users/"+url.PathEscape(id)+"/block", map[string]bool{
		"blocked": blocked,
	}, &u)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
