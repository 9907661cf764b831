package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/foodorder/internal/cart"
	"github.com/dmitrijs2005/foodorder/internal/catalog"
)

var (
	errUsage          = errors.New("wrong arguments, see help")
	errUnknownProduct = errors.New("no such dish on the menu")
)

func (a *App) Menu(ctx context.Context, args []string) error {
	category := ""
	if len(args) > 0 {
		category = strings.Join(args, " ")
	}

	items, err := a.api.Menu(ctx, category)
	if err != nil {
		return err
	}
	if category == "" {
		a.menu = items
	}

	if len(items) == 0 {
		printlnFn("Nothing on the menu")
		return nil
	}
	for _, c := range catalog.Categories(items) {
		printlnFn("==", c, "==")
		for _, it := range items {
			if it.Category != c {
				continue
			}
			line := fmt.Sprintf("  %-8s %-28s %8s", it.ID, it.Name, it.Price.StringFixed(2))
			if it.IsFrozen {
				line += "  (frozen)"
			}
			printlnFn(line)
		}
	}
	return nil
}

// product looks id up in the cached menu, fetching the menu once if needed.
func (a *App) product(ctx context.Context, id string) (cart.Product, error) {
	if it, ok := catalog.Find(a.menu, id); ok {
		return cart.FromCatalog(it), nil
	}
	items, err := a.api.Menu(ctx, "")
	if err != nil {
		return cart.Product{}, err
	}
	a.menu = items
	it, ok := catalog.Find(items, id)
	if !ok {
		return cart.Product{}, errUnknownProduct
	}
	return cart.FromCatalog(it), nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errUsage
		}
		qty = n
	}

	p, err := a.product(ctx, args[0])
	if err != nil {
		return err
	}
	if a.session.AddToCart(p, qty) != nil {
		a.saveCart(ctx)
	}
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a.session.RemoveFromCart(args[0])
	a.saveCart(ctx)
	return nil
}

func (a *App) Quantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}
	if a.session.UpdateQuantity(args[0], n) == nil {
		printlnFn("Quantity unchanged")
		return nil
	}
	a.saveCart(ctx)
	return nil
}

func (a *App) ShowCart(context.Context) error {
	lines := a.session.Lines()
	if len(lines) == 0 {
		printlnFn("Your cart is empty")
		return nil
	}
	for _, l := range lines {
		printlnFn(fmt.Sprintf("  %-8s %-28s %3d x %8s = %9s",
			l.Product.ID, l.Product.Name, l.Quantity, l.Product.UnitPrice.StringFixed(2), l.Total().StringFixed(2)))
	}
	printlnFn(fmt.Sprintf("  %d item(s), subtotal %s", a.session.ItemCount(), a.session.Subtotal().StringFixed(2)))
	return nil
}

func (a *App) Quote(context.Context) error {
	q := cart.PriceCart(a.session.Cart(), a.config.DeliveryPolicy())
	printlnFn(fmt.Sprintf("Subtotal: %9s", q.Subtotal.StringFixed(2)))
	printlnFn(fmt.Sprintf("Delivery: %9s", q.DeliveryFee.StringFixed(2)))
	printlnFn(fmt.Sprintf("Total:    %9s", q.Total.StringFixed(2)))
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	a.session.ClearCart()
	if err := a.carts.Delete(ctx, a.config.SessionName); err != nil {
		a.logger.Error(ctx, "cart snapshot delete failed", "error", err)
	}
	return nil
}

// SavedCarts lists the browsing sessions with a stored cart, marking the
// current one.
func (a *App) SavedCarts(ctx context.Context) error {
	names, err := a.carts.Names(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		printlnFn("No saved carts")
		return nil
	}
	for _, n := range names {
		if n == a.config.SessionName {
			printlnFn("*", n)
			continue
		}
		printlnFn(" ", n)
	}
	return nil
}
