package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

func (f ProductFilter) query() string {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(f.PerPage))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListProducts returns one catalog page, served from the short-lived local
// cache when the same page was just fetched.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) (ProductPage, error) {
	cacheKey := "products:" + filter.query()

	var page ProductPage
	if ok, err := c.catalog.GetJSON(ctx, cacheKey, &page); err == nil && ok {
		return page, nil
	}

	if err := c.get(ctx, "/products"+filter.query(), &page); err != nil {
		return ProductPage{}, err
	}
	for i := range page.Items {
		c.sanitizeProduct(&page.Items[i])
	}
	if err := c.catalog.SetJSON(ctx, cacheKey, page, 0); err != nil {
		c.log.Warn("cache product page", "error", err)
	}
	return page, nil
}

// GetProduct returns a single catalog entry.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("api: product id is required")
	}
	cacheKey := "product:" + id

	var product Product
	if ok, err := c.catalog.GetJSON(ctx, cacheKey, &product); err == nil && ok {
		return product, nil
	}

	if err := c.get(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return Product{}, err
	}
	c.sanitizeProduct(&product)
	if err := c.catalog.SetJSON(ctx, cacheKey, product, 0); err != nil {
		c.log.Warn("cache product", "error", err)
	}
	return product, nil
}

// ListCategories returns all catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if ok, err := c.catalog.GetJSON(ctx, "categories", &categories); err == nil && ok {
		return categories, nil
	}
	if err := c.get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	if err := c.catalog.SetJSON(ctx, "categories", categories, 0); err != nil {
		c.log.Warn("cache categories", "error", err)
	}
	return categories, nil
}

// sanitizeProduct strips any markup the backend lets through before the text
// reaches a terminal.
func (c *Client) sanitizeProduct(p *Product) {
	p.Name = strings.TrimSpace(c.sanitize.Sanitize(p.Name))
	p.Description = strings.TrimSpace(c.sanitize.Sanitize(p.Description))
}
