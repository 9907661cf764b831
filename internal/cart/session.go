package cart

import (
	"github.com/shopspring/decimal"
)

// Notifier receives the events produced by a Session.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

// Session owns the cart of one browsing session. It is not safe for
// concurrent use; a cart belongs to a single user interaction loop.
type Session struct {
	cart     Cart
	notifier Notifier
}

// NewSession starts a session with an empty cart. A nil notifier drops events.
func NewSession(n Notifier) *Session {
	if n == nil {
		n = nopNotifier{}
	}
	return &Session{notifier: n}
}

// Dispatch applies cmd and forwards the resulting event, if any.
func (s *Session) Dispatch(cmd Command) Event {
	var ev Event
	s.cart, ev = Apply(s.cart, cmd)
	if ev != nil {
		s.notifier.Notify(ev)
	}
	return ev
}

func (s *Session) AddToCart(p Product, quantity int) Event {
	return s.Dispatch(AddItem{Product: p, Quantity: quantity})
}

func (s *Session) RemoveFromCart(productID string) Event {
	return s.Dispatch(RemoveItem{ProductID: productID})
}

func (s *Session) UpdateQuantity(productID string, quantity int) Event {
	return s.Dispatch(SetQuantity{ProductID: productID, Quantity: quantity})
}

func (s *Session) ClearCart() Event {
	return s.Dispatch(ClearItems{})
}

// Restore replaces the cart without notifying, e.g. after loading a snapshot.
func (s *Session) Restore(c Cart) {
	s.cart = c
}

func (s *Session) Cart() Cart { return s.cart }

func (s *Session) Lines() []LineItem { return s.cart.Lines() }

func (s *Session) Subtotal() decimal.Decimal { return s.cart.Subtotal() }

func (s *Session) ItemCount() int { return s.cart.ItemCount() }
