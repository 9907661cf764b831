package cart

import "fmt"

// Event describes the outcome of a cart operation.
type Event interface {
	// Message is the user-facing notification text.
	Message() string
}

type EventAdded struct {
	Product  Product
	Quantity int
}

type EventMerged struct {
	Product  Product
	Added    int
	Quantity int
}

type EventRemoved struct {
	ProductID string
	Name      string
	Found     bool
}

type EventQuantityUpdated struct {
	Product  Product
	Previous int
	Quantity int
}

type EventCleared struct {
	Lines int
	Items int
}

func (e EventAdded) Message() string {
	if e.Quantity == 1 {
		return fmt.Sprintf("Added %s to cart", e.Product.Name)
	}
	return fmt.Sprintf("Added %d x %s to cart", e.Quantity, e.Product.Name)
}

func (e EventMerged) Message() string {
	return fmt.Sprintf("Added %d more of %s (now %d)", e.Added, e.Product.Name, e.Quantity)
}

func (e EventRemoved) Message() string {
	if !e.Found {
		return "Item is not in the cart"
	}
	return fmt.Sprintf("Removed %s from cart", e.Name)
}

func (e EventQuantityUpdated) Message() string {
	return fmt.Sprintf("%s quantity set to %d", e.Product.Name, e.Quantity)
}

func (e EventCleared) Message() string {
	return "Cart cleared"
}
