package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/models"
)

const (
	msgNotFound       = "Product not found"
	msgNothingToDo    = "Nothing to update"
	msgBadID          = "ID must be a whole number"
	msgBadQuantity    = "Quantity must be a whole number"
	msgBadPrice       = "Price must be a number"
	msgNoProductsSeen = "No products found"
)

func formatProduct(p *models.Product) string {
	return fmt.Sprintf("ID: %d, Name: %s, Quantity: %d, Price: %s",
		p.ID, p.Name, p.Quantity, strconv.FormatFloat(p.Price, 'f', -1, 64))
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// report prints the user-facing form of err. Store failures are logged and
// returned so the menu shows them too.
func (a *App) report(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		a.println(msgNotFound)
		return nil
	case errors.Is(err, common.ErrorValidation):
		a.println("Error:", strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": "))
		return nil
	}
	a.logger.Error(ctx, "inventory command failed", "error", err.Error())
	return err
}

func (a *App) AddProduct(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name: ", a.out)
	if err != nil {
		return err
	}
	qty, _, err := GetInt(a.reader, "Quantity: ", a.out, false, msgBadQuantity)
	if err != nil {
		return err
	}
	price, _, err := GetFloat(a.reader, "Price: ", a.out, false, msgBadPrice)
	if err != nil {
		return err
	}

	p, err := a.products.Create(ctx, &models.Product{Name: name, Quantity: int(qty), Price: price})
	if err != nil {
		return a.report(ctx, err)
	}
	a.println("Added id:", p.ID)
	return nil
}

func (a *App) DeleteProduct(ctx context.Context) error {
	id, _, err := GetInt(a.reader, "ID to delete: ", a.out, false, msgBadID)
	if err != nil {
		return err
	}
	if err := a.products.Delete(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	a.println("Deleted")
	return nil
}

// UpdateProduct asks for each field; blank input leaves the field as it is.
func (a *App) UpdateProduct(ctx context.Context) error {
	id, _, err := GetInt(a.reader, "ID to update: ", a.out, false, msgBadID)
	if err != nil {
		return err
	}

	var patch models.ProductPatch

	name, err := GetSimpleText(a.reader, "New name (enter=skip): ", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = models.Some(name)
	}

	qty, ok, err := GetInt(a.reader, "New quantity (enter=skip): ", a.out, true, msgBadQuantity)
	if err != nil {
		return err
	}
	if ok {
		patch.Quantity = models.Some(int(qty))
	}

	price, ok, err := GetFloat(a.reader, "New price (enter=skip): ", a.out, true, msgBadPrice)
	if err != nil {
		return err
	}
	if ok {
		patch.Price = models.Some(price)
	}

	if patch.IsEmpty() {
		a.println(msgNothingToDo)
		return nil
	}

	if _, err := a.products.Update(ctx, id, patch); err != nil {
		return a.report(ctx, err)
	}
	a.println("Updated")
	return nil
}

func (a *App) SearchProducts(ctx context.Context) error {
	q, err := GetSimpleText(a.reader, "Name to search: ", a.out)
	if err != nil {
		return err
	}
	list, err := a.products.Search(ctx, q)
	if err != nil {
		return a.report(ctx, err)
	}
	a.printProducts(list)
	return nil
}

func (a *App) ShowAll(ctx context.Context) error {
	list, err := a.products.List(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	a.printProducts(list)
	return nil
}

func (a *App) printProducts(list []*models.Product) {
	if len(list) == 0 {
		a.println(msgNoProductsSeen)
		return
	}
	for _, p := range list {
		a.println(formatProduct(p))
	}
}
