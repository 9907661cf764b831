package cart

// Command is a cart mutation that can be applied with Apply.
type Command interface {
	apply(c Cart) (Cart, Event)
}

type AddItem struct {
	Product  Product
	Quantity int
}

type RemoveItem struct {
	ProductID string
}

type SetQuantity struct {
	ProductID string
	Quantity  int
}

type ClearItems struct{}

func (cmd AddItem) apply(c Cart) (Cart, Event)     { return c.Add(cmd.Product, cmd.Quantity) }
func (cmd RemoveItem) apply(c Cart) (Cart, Event)  { return c.Remove(cmd.ProductID) }
func (cmd SetQuantity) apply(c Cart) (Cart, Event) { return c.UpdateQuantity(cmd.ProductID, cmd.Quantity) }
func (ClearItems) apply(c Cart) (Cart, Event)      { return c.Clear() }

// Apply is the pure transition function: it returns the cart that results
// from cmd and the event to report. The input cart is never modified.
// A nil event means cmd changed nothing worth reporting.
func Apply(c Cart, cmd Command) (Cart, Event) {
	if cmd == nil {
		return c, nil
	}
	return cmd.apply(c)
}
