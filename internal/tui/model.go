// Package tui is the interactive storefront: browse the catalog, manage the
// cart and follow orders without leaving the terminal. Checkout itself stays
// on the CLI where the payment redirect can be handled.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/shopfront/internal/api"
)

// ViewType selects the active screen.
type ViewType int

const (
	ViewCatalog ViewType = iota
	ViewProductDetail
	ViewCart
	ViewOrders
	ViewOrderDetail
)

// Model is the main TUI model.
type Model struct {
	client *api.Client

	// Catalog
	products        []api.Product
	selectedProduct int
	detailProduct   *api.Product

	// Cart
	cart         api.Cart
	selectedItem int

	// Orders
	orders        []api.Order
	selectedOrder int
	detailOrder   *api.Order

	view   ViewType
	width  int
	height int

	loading bool
	err     error
	notice  string

	keys keyMap
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	Refresh  key.Binding
	AddCart  key.Binding
	Cart     key.Binding
	Orders   key.Binding
	Catalog  key.Binding
	More     key.Binding
	Less     key.Binding
	Remove   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		AddCart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to cart"),
		),
		Cart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cart"),
		),
		Orders: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "orders"),
		),
		Catalog: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "catalog"),
		),
		More: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "more"),
		),
		Less: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
	}
}

// NewModel creates the storefront TUI model.
func NewModel(client *api.Client) Model {
	return Model{
		client:  client,
		view:    ViewCatalog,
		keys:    defaultKeyMap(),
		loading: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProducts(), tickCmd())
}

// Messages

type productsLoadedMsg struct {
	products []api.Product
}

type cartLoadedMsg struct {
	cart api.Cart
}

type ordersLoadedMsg struct {
	orders []api.Order
}

type orderLoadedMsg struct {
	order api.Order
}

type noticeMsg struct {
	text string
}

type errorMsg struct {
	err error
}

type tickMsg time.Time

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(15*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadProducts() tea.Cmd {
	return func() tea.Msg {
		page, err := m.client.ListProducts(context.Background(), api.ProductFilter{})
		if err != nil {
			return errorMsg{err: err}
		}
		return productsLoadedMsg{products: page.Items}
	}
}

func (m Model) loadCart() tea.Cmd {
	return func() tea.Msg {
		cart, err := m.client.GetCart(context.Background())
		if err != nil {
			return errorMsg{err: err}
		}
		return cartLoadedMsg{cart: cart}
	}
}

func (m Model) loadOrders() tea.Cmd {
	return func() tea.Msg {
		page, err := m.client.ListMyOrders(context.Background(), 0)
		if err != nil {
			return errorMsg{err: err}
		}
		return ordersLoadedMsg{orders: page.Items}
	}
}

func (m Model) loadOrder(id string) tea.Cmd {
	return func() tea.Msg {
		o, err := m.client.GetOrder(context.Background(), id)
		if err != nil {
			return errorMsg{err: err}
		}
		return orderLoadedMsg{order: o}
	}
}

func (m Model) addToCart(productID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.client.AddToCart(context.Background(), productID, 1); err != nil {
			return errorMsg{err: err}
		}
		return noticeMsg{text: "Added to cart"}
	}
}

func (m Model) setItemQuantity(itemID string, quantity int) tea.Cmd {
	return func() tea.Msg {
		cart, err := m.client.UpdateCartItem(context.Background(), itemID, quantity)
		if err != nil {
			return errorMsg{err: err}
		}
		return cartLoadedMsg{cart: cart}
	}
}

func (m Model) removeItem(itemID string) tea.Cmd {
	return func() tea.Msg {
		cart, err := m.client.RemoveCartItem(context.Background(), itemID)
		if err != nil {
			return errorMsg{err: err}
		}
		return cartLoadedMsg{cart: cart}
	}
}
