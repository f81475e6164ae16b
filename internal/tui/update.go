package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/shopfront/internal/api"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case productsLoadedMsg:
		m.loading = false
		m.products = msg.products
		if m.selectedProduct >= len(m.products) {
			m.selectedProduct = 0
		}
		m.err = nil
		return m, nil

	case cartLoadedMsg:
		m.loading = false
		m.cart = msg.cart
		if m.selectedItem >= len(m.cart.Items) {
			m.selectedItem = 0
		}
		m.err = nil
		return m, nil

	case ordersLoadedMsg:
		m.loading = false
		m.orders = msg.orders
		if m.selectedOrder >= len(m.orders) {
			m.selectedOrder = 0
		}
		m.err = nil
		return m, nil

	case orderLoadedMsg:
		m.loading = false
		o := msg.order
		m.detailOrder = &o
		m.err = nil
		return m, nil

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case errorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tickMsg:
		// Only the order detail auto-refreshes; its status moves server-side.
		if m.view == ViewOrderDetail && m.detailOrder != nil {
			return m, tea.Batch(m.loadOrder(m.detailOrder.ID), tickCmd())
		}
		return m, tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		return m.moveSelection(-1), nil

	case key.Matches(msg, m.keys.Down):
		return m.moveSelection(1), nil

	case key.Matches(msg, m.keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, m.keys.Back):
		return m.handleBack()

	case key.Matches(msg, m.keys.Refresh):
		return m.refreshCurrent()

	case key.Matches(msg, m.keys.Catalog):
		m.view = ViewCatalog
		m.loading = true
		return m, m.loadProducts()

	case key.Matches(msg, m.keys.Cart):
		m.view = ViewCart
		m.loading = true
		return m, m.loadCart()

	case key.Matches(msg, m.keys.Orders):
		m.view = ViewOrders
		m.loading = true
		return m, m.loadOrders()

	case key.Matches(msg, m.keys.AddCart):
		if p := m.currentProduct(); p != nil {
			return m, m.addToCart(p.ID)
		}

	case key.Matches(msg, m.keys.More):
		if m.view == ViewCart {
			if item := m.currentCartItem(); item != nil {
				return m, m.setItemQuantity(item.ID, item.Quantity+1)
			}
		}

	case key.Matches(msg, m.keys.Less):
		if m.view == ViewCart {
			if item := m.currentCartItem(); item != nil && item.Quantity > 1 {
				return m, m.setItemQuantity(item.ID, item.Quantity-1)
			}
		}

	case key.Matches(msg, m.keys.Remove):
		if m.view == ViewCart {
			if item := m.currentCartItem(); item != nil {
				return m, m.removeItem(item.ID)
			}
		}
	}

	return m, nil
}

func (m Model) moveSelection(delta int) Model {
	switch m.view {
	case ViewCatalog:
		m.selectedProduct = clamp(m.selectedProduct+delta, len(m.products))
	case ViewCart:
		m.selectedItem = clamp(m.selectedItem+delta, len(m.cart.Items))
	case ViewOrders:
		m.selectedOrder = clamp(m.selectedOrder+delta, len(m.orders))
	}
	return m
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewCatalog:
		if p := m.currentProduct(); p != nil {
			m.detailProduct = p
			m.view = ViewProductDetail
		}
	case ViewOrders:
		if o := m.currentOrder(); o != nil {
			m.detailOrder = o
			m.view = ViewOrderDetail
			m.loading = true
			return m, m.loadOrder(o.ID)
		}
	}
	return m, nil
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewProductDetail:
		m.view = ViewCatalog
		m.detailProduct = nil
	case ViewOrderDetail:
		m.view = ViewOrders
		m.detailOrder = nil
	case ViewCart, ViewOrders:
		m.view = ViewCatalog
	}
	return m, nil
}

func (m Model) refreshCurrent() (tea.Model, tea.Cmd) {
	m.loading = true
	switch m.view {
	case ViewCatalog, ViewProductDetail:
		return m, m.loadProducts()
	case ViewCart:
		return m, m.loadCart()
	case ViewOrders:
		return m, m.loadOrders()
	case ViewOrderDetail:
		if m.detailOrder != nil {
			return m, m.loadOrder(m.detailOrder.ID)
		}
	}
	m.loading = false
	return m, nil
}

func (m Model) currentProduct() *api.Product {
	if m.detailProduct != nil && m.view == ViewProductDetail {
		return m.detailProduct
	}
	if m.view != ViewCatalog || m.selectedProduct >= len(m.products) {
		return nil
	}
	return &m.products[m.selectedProduct]
}

func (m Model) currentCartItem() *api.CartItem {
	if m.selectedItem >= len(m.cart.Items) {
		return nil
	}
	return &m.cart.Items[m.selectedItem]
}

func (m Model) currentOrder() *api.Order {
	if m.selectedOrder >= len(m.orders) {
		return nil
	}
	return &m.orders[m.selectedOrder]
}
