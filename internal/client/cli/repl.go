package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func itoa(n int) string { return strconv.Itoa(n) }

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Menu(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Quantity(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	Quote(ctx context.Context) error
	Clear(ctx context.Context) error
	SavedCarts(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	AddUser(ctx context.Context) error
}

// runREPL reads a line, takes the first token as the command and dispatches
// to a. It exits on scanner EOF, ctx cancellation, or "exit"/"quit".
//
//	menu [category]      list available dishes
//	add <id> [qty]       add a dish to the cart
//	remove <id>          drop a line
//	qty <id> <n>         set a line's quantity
//	cart                 show the cart
//	quote                subtotal, delivery fee and total
//	clear                empty the cart and drop its snapshot
//	carts                list carts saved on this machine
//	login / logout / whoami / passwd / adduser
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("shop (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: menu, add, remove, qty, cart, quote, clear, carts, whoami, passwd, adduser, logout, exit")
			} else {
				printlnFn("Available commands: menu, add, remove, qty, cart, quote, clear, carts, login, exit")
			}
		case "menu", "m":
			err = a.Menu(ctx, args)
		case "add":
			err = a.Add(ctx, args)
		case "remove", "rm":
			err = a.Remove(ctx, args)
		case "qty":
			err = a.Quantity(ctx, args)
		case "cart":
			err = a.ShowCart(ctx)
		case "quote", "checkout":
			err = a.Quote(ctx)
		case "clear":
			err = a.Clear(ctx)
		case "carts":
			err = a.SavedCarts(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)
		case "adduser":
			err = a.AddUser(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
