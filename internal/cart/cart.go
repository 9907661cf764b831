// Package cart implements the storefront shopping cart.
//
// A Cart is an immutable value: every operation returns a new Cart together
// with the Event describing what happened. Side effects such as user-facing
// notifications live in Session, which forwards events to a Notifier.
package cart

import "github.com/shopspring/decimal"

// Product is the cart-side shape of a menu item. Use FromCatalog to build one
// from a catalog.Item.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	ImageRef    string          `json:"imageRef,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Frozen      bool            `json:"frozen"`
}

// LineItem is one product in the cart. Quantity is always at least 1.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total is the unit price times the quantity.
func (l LineItem) Total() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product id, in insertion order.
// The zero value is an empty cart.
type Cart struct {
	lines    []LineItem
	subtotal decimal.Decimal
	count    int
}

// New builds a cart from lines, merging repeated product ids and dropping
// lines with a quantity below 1.
func New(lines ...LineItem) Cart {
	var c Cart
	for _, l := range lines {
		c, _ = c.Add(l.Product, l.Quantity)
	}
	return c
}

// Lines returns a copy of the line items.
func (c Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) Subtotal() decimal.Decimal { return c.subtotal }

func (c Cart) ItemCount() int { return c.count }

func (c Cart) Len() int { return len(c.lines) }

func (c Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Line returns the line for productID.
func (c Cart) Line(productID string) (LineItem, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return LineItem{}, false
}

// Add merges quantity into an existing line for product.ID, or appends a new
// line. A quantity below 1 leaves the cart unchanged and returns a nil event.
func (c Cart) Add(product Product, quantity int) (Cart, Event) {
	if quantity < 1 {
		return c, nil
	}

	lines := c.Lines()
	if i := c.index(product.ID); i >= 0 {
		lines[i].Quantity += quantity
		return withLines(lines), EventMerged{Product: lines[i].Product, Added: quantity, Quantity: lines[i].Quantity}
	}

	lines = append(lines, LineItem{Product: product, Quantity: quantity})
	return withLines(lines), EventAdded{Product: product, Quantity: quantity}
}

// Remove deletes the line for productID. Removing an absent product is not an
// error; the event reports Found=false.
func (c Cart) Remove(productID string) (Cart, Event) {
	i := c.index(productID)
	if i < 0 {
		return c, EventRemoved{ProductID: productID}
	}

	removed := c.lines[i]
	lines := make([]LineItem, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	return withLines(lines), EventRemoved{ProductID: productID, Name: removed.Product.Name, Found: true}
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1 is
// ignored and does not remove the line; use Remove for that. Unknown products
// are ignored too. Ignored calls return a nil event.
func (c Cart) UpdateQuantity(productID string, quantity int) (Cart, Event) {
	if quantity < 1 {
		return c, nil
	}
	i := c.index(productID)
	if i < 0 {
		return c, nil
	}

	lines := c.Lines()
	previous := lines[i].Quantity
	lines[i].Quantity = quantity
	return withLines(lines), EventQuantityUpdated{Product: lines[i].Product, Previous: previous, Quantity: quantity}
}

// Clear empties the cart.
func (c Cart) Clear() (Cart, Event) {
	return Cart{}, EventCleared{Lines: len(c.lines), Items: c.count}
}

func (c Cart) index(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// withLines recomputes the derived totals for lines.
func withLines(lines []LineItem) Cart {
	c := Cart{lines: lines}
	for _, l := range lines {
		c.subtotal = c.subtotal.Add(l.Total())
		c.count += l.Quantity
	}
	return c
}
