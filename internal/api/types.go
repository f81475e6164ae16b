package api

import (
	"time"

	"github.com/creamcroissant/shopfront/internal/order"
)

// TokenPair is the credential pair issued by login, register and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is the backend's user summary, cached locally after login.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user may use the back-office surface.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// Category groups products in the catalog.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a catalog entry. Amounts are minor currency units.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	CategoryID  string `json:"categoryId"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Items   []Product `json:"items"`
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
	Total   int       `json:"total"`
}

// CartItem is a mutable line in the cart, before checkout freezes it.
type CartItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Cart is the server-side cart for the current user.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Currency string     `json:"currency"`
}

// Address is a shipping address; orders carry a frozen snapshot of it.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ShippingQuote is the deliverability answer for an address.
type ShippingQuote struct {
	Deliverable bool   `json:"deliverable"`
	Cost        int64  `json:"cost"`
	Reason      string `json:"reason,omitempty"`
}

// LineItem is an immutable order line with its unit-price snapshot.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Order is a placed order. Line items never change after creation; only the
// status moves, and only along the transition table.
type Order struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	Items        []LineItem   `json:"items"`
	Status       order.Status `json:"status"`
	Address      Address      `json:"address"`
	DeliveryDate string       `json:"deliveryDate"`
	DeliverySlot string       `json:"deliverySlot"`
	Subtotal     int64        `json:"subtotal"`
	ShippingCost int64        `json:"shippingCost"`
	ServiceFee   int64        `json:"serviceFee"`
	GrandTotal   int64        `json:"grandTotal"`
	Currency     string       `json:"currency"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// OrderPage is one page of order listings.
type OrderPage struct {
	Items []Order `json:"items"`
	Page  int     `json:"page"`
	Total int     `json:"total"`
}

// CheckoutResult is the checkout response; PaymentURL is set when the
// gateway needs a browser redirect to collect payment.
type CheckoutResult struct {
	Order      Order  `json:"order"`
	PaymentURL string `json:"paymentUrl,omitempty"`
}
