package tui

import (
	"fmt"
	"strings"

	"github.com/creamcroissant/shopfront/internal/support/format"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case ViewProductDetail:
		return m.renderProductDetail()
	case ViewCart:
		return m.renderCart()
	case ViewOrders:
		return m.renderOrders()
	case ViewOrderDetail:
		return m.renderOrderDetail()
	default:
		return m.renderCatalog()
	}
}

func (m Model) renderChrome(b *strings.Builder, title string) {
	b.WriteString(styleHeader.Width(m.width).Render("  Shopfront — " + title))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleError.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	if m.notice != "" {
		b.WriteString(styleNotice.Render("  " + m.notice))
		b.WriteString("\n\n")
	}
	if m.loading {
		b.WriteString(styleMuted.Render("  Loading..."))
		b.WriteString("\n\n")
	}
}

func (m Model) visibleRows() int {
	rows := m.height - 10
	if rows < 5 {
		rows = 5
	}
	return rows
}

func windowBounds(selected, total, visible int) (int, int) {
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := start + visible
	if end > total {
		end = total
	}
	return start, end
}

func (m Model) renderCatalog() string {
	var b strings.Builder
	m.renderChrome(&b, "Catalog")

	header := fmt.Sprintf("  %-28s │ %-10s │ %-6s", "Product", "Price", "Stock")
	b.WriteString(styleTableHeader.Width(m.width).Render(header))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if len(m.products) == 0 && !m.loading {
		b.WriteString(styleMuted.Render("  The catalog is empty."))
		b.WriteString("\n")
	} else {
		start, end := windowBounds(m.selectedProduct, len(m.products), m.visibleRows())
		for i := start; i < end; i++ {
			p := m.products[i]
			row := fmt.Sprintf("  %-28s │ %-10s │ %-6d",
				truncate(p.Name, 28), format.Money(p.Price, p.Currency), p.Stock)
			if i == m.selectedProduct {
				b.WriteString(styleRowSelected.Width(m.width).Render(row))
			} else {
				b.WriteString(styleRow.Render(row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("↑/↓ select · enter details · a add to cart · c cart · o orders · r refresh · q quit"))
	return b.String()
}

func (m Model) renderProductDetail() string {
	var b strings.Builder
	m.renderChrome(&b, "Product")

	if m.detailProduct == nil {
		b.WriteString(styleMuted.Render("  No product selected."))
		return b.String()
	}
	p := m.detailProduct

	var d strings.Builder
	d.WriteString(styleLabel.Render("Name") + p.Name + "\n")
	d.WriteString(styleLabel.Render("Price") + format.Money(p.Price, p.Currency) + "\n")
	d.WriteString(styleLabel.Render("Stock") + fmt.Sprintf("%d", p.Stock) + "\n")
	if p.Description != "" {
		d.WriteString(styleLabel.Render("About") + wrap(p.Description, m.width-24) + "\n")
	}
	b.WriteString(styleDetailBox.Render(d.String()))

	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("a add to cart · esc back · q quit"))
	return b.String()
}

func (m Model) renderCart() string {
	var b strings.Builder
	m.renderChrome(&b, "Cart")

	header := fmt.Sprintf("  %-28s │ %-10s │ %-4s │ %-10s", "Item", "Unit", "Qty", "Total")
	b.WriteString(styleTableHeader.Width(m.width).Render(header))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if len(m.cart.Items) == 0 && !m.loading {
		b.WriteString(styleMuted.Render("  Your cart is empty."))
		b.WriteString("\n")
	} else {
		for i, item := range m.cart.Items {
			row := fmt.Sprintf("  %-28s │ %-10s │ %-4d │ %-10s",
				truncate(item.Name, 28),
				format.Money(item.UnitPrice, m.cart.Currency),
				item.Quantity,
				format.Money(item.UnitPrice*int64(item.Quantity), m.cart.Currency))
			if i == m.selectedItem {
				b.WriteString(styleRowSelected.Width(m.width).Render(row))
			} else {
				b.WriteString(styleRow.Render(row))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Subtotal: %s\n", format.Money(m.cart.Subtotal, m.cart.Currency)))
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("+/- quantity · x remove · p catalog · o orders · q quit — checkout via `shopfront checkout`"))
	return b.String()
}

func (m Model) renderOrders() string {
	var b strings.Builder
	m.renderChrome(&b, "Orders")

	header := fmt.Sprintf("  %-12s │ %-20s │ %-10s │ %s", "Order", "Placed", "Total", "Status")
	b.WriteString(styleTableHeader.Width(m.width).Render(header))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if len(m.orders) == 0 && !m.loading {
		b.WriteString(styleMuted.Render("  No orders yet."))
		b.WriteString("\n")
	} else {
		start, end := windowBounds(m.selectedOrder, len(m.orders), m.visibleRows())
		for i := start; i < end; i++ {
			o := m.orders[i]
			row := fmt.Sprintf("  %-12s │ %-20s │ %-10s │ %s",
				truncate(o.ID, 12),
				o.CreatedAt.Format("2006-01-02 15:04"),
				format.Money(o.GrandTotal, o.Currency),
				StatusBadge(o.Status))
			if i == m.selectedOrder {
				b.WriteString(styleRowSelected.Width(m.width).Render(row))
			} else {
				b.WriteString(styleRow.Render(row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("enter details · p catalog · c cart · r refresh · q quit"))
	return b.String()
}

func (m Model) renderOrderDetail() string {
	var b strings.Builder
	m.renderChrome(&b, "Order")

	if m.detailOrder == nil {
		b.WriteString(styleMuted.Render("  No order selected."))
		return b.String()
	}
	o := m.detailOrder

	b.WriteString("  " + ProgressBar(o.Status))
	b.WriteString("\n\n")

	var d strings.Builder
	d.WriteString(styleLabel.Render("Order") + o.ID + "\n")
	d.WriteString(styleLabel.Render("Status") + StatusBadge(o.Status) + "\n")
	d.WriteString(styleLabel.Render("Delivery") + o.DeliveryDate)
	if o.DeliverySlot != "" {
		d.WriteString(" (" + o.DeliverySlot + ")")
	}
	d.WriteString("\n")
	d.WriteString(styleLabel.Render("Ship to") + o.Address.Line1 + ", " + o.Address.City + "\n")
	d.WriteString("\n")
	for _, item := range o.Items {
		d.WriteString(fmt.Sprintf("  %dx %-26s %s\n", item.Quantity, truncate(item.Name, 26),
			format.Money(item.UnitPrice*int64(item.Quantity), o.Currency)))
	}
	d.WriteString("\n")
	d.WriteString(styleLabel.Render("Subtotal") + format.Money(o.Subtotal, o.Currency) + "\n")
	d.WriteString(styleLabel.Render("Shipping") + format.Money(o.ShippingCost, o.Currency) + "\n")
	d.WriteString(styleLabel.Render("Service fee") + format.Money(o.ServiceFee, o.Currency) + "\n")
	d.WriteString(styleLabel.Render("Total") + format.Money(o.GrandTotal, o.Currency) + "\n")
	b.WriteString(styleDetailBox.Render(d.String()))

	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("esc back · r refresh · q quit"))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(s)
	var out strings.Builder
	line := 0
	for i, w := range words {
		if line+len(w)+1 > width && line > 0 {
			out.WriteString("\n" + strings.Repeat(" ", 14))
			line = 0
		} else if i > 0 {
			out.WriteString(" ")
			line++
		}
		out.WriteString(w)
		line += len(w)
	}
	return out.String()
}
