package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

const menu = `
--- Inventory ---
1) Add product
2) Delete by ID
3) Update by ID
4) Search by name
5) Show all
0) Exit`

// execIface defines the command surface the menu dispatches to. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	AddProduct(ctx context.Context) error
	DeleteProduct(ctx context.Context) error
	UpdateProduct(ctx context.Context) error
	SearchProducts(ctx context.Context) error
	ShowAll(ctx context.Context) error
}

// runREPL shows the menu and dispatches the chosen option until the user
// picks 0 or input ends. With repeatMenu unset the menu is printed only
// before the first prompt, which keeps piped sessions readable.
//
// Commands report their own user-facing messages. errMalformed returns to
// the menu, io.EOF ends the loop and any other error is printed.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer, repeatMenu bool) {
	first := true
	for {
		if first || repeatMenu {
			fmt.Fprintln(w, menu)
		}
		first = false

		opt, err := GetSimpleText(reader, "Choose option: ", w)
		if err != nil {
			fmt.Fprintln(w)
			return
		}

		var cmdErr error
		switch opt {
		case "1":
			cmdErr = a.AddProduct(ctx)
		case "2":
			cmdErr = a.DeleteProduct(ctx)
		case "3":
			cmdErr = a.UpdateProduct(ctx)
		case "4":
			cmdErr = a.SearchProducts(ctx)
		case "5":
			cmdErr = a.ShowAll(ctx)
		case "0":
			return
		default:
			fmt.Fprintln(w, "Invalid option")
		}

		switch {
		case cmdErr == nil, errors.Is(cmdErr, errMalformed):
		case errors.Is(cmdErr, io.EOF):
			fmt.Fprintln(w)
			return
		default:
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}
