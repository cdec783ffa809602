package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/export"
	"github.com/dmitrijs2005/solidarias/internal/models"
)

const (
	msgProductAdded   = "Product added successfully"
	msgProductUpdated = "Product updated successfully"
	msgProductDeleted = "Product deleted successfully"
	msgNothingToDo    = "Nothing to update"
)

type productList struct {
	Products []*models.Product
	Formats  []export.Format
}

type productForm struct {
	Action  string
	Product *models.Product
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	list, err := h.products.Search(r.Context(), q)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "products", page{
		Title: "Products",
		Query: q,
		Data:  productList{Products: list, Formats: export.Formats},
	})
}

func (h *Handlers) NewProductForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "product_form", page{
		Title: "New product",
		Data:  productForm{Action: "/products/add"},
	})
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := parseProduct(r)
	if err != nil {
		h.fail(w, r, err, "/products/add")
		return
	}
	if _, err := h.products.Create(r.Context(), p); err != nil {
		h.fail(w, r, err, "/products/add")
		return
	}
	h.redirectWithFlash(w, r, "/list", flashSuccess, msgProductAdded)
}

func (h *Handlers) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "/list")
		return
	}
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "/list")
		return
	}
	h.render(w, r, http.StatusOK, "product_form", page{
		Title: "Edit product",
		Data:  productForm{Action: fmt.Sprintf("/products/update/%d", id), Product: p},
	})
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "/list")
		return
	}
	back := fmt.Sprintf("/products/update/%d", id)

	patch, err := parseProductPatch(r)
	if err != nil {
		h.fail(w, r, err, back)
		return
	}
	if patch.IsEmpty() {
		h.redirectWithFlash(w, r, back, flashWarning, msgNothingToDo)
		return
	}

	if _, err := h.products.Update(r.Context(), id, patch); err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.redirectWithFlash(w, r, "/list", flashSuccess, msgProductUpdated)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "/list")
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "/list")
		return
	}
	h.redirectWithFlash(w, r, "/list", flashSuccess, msgProductDeleted)
}

func (h *Handlers) APIProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.products.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.jsonError(w, r, err)
		return
	}
	h.json(w, http.StatusOK, list)
}

// parseProduct reads a complete product; every field is required.
func parseProduct(r *http.Request) (*models.Product, error) {
	patch, err := parseProductPatch(r)
	if err != nil {
		return nil, err
	}
	if !patch.Name.Set || !patch.Quantity.Set || !patch.Price.Set {
		return nil, fmt.Errorf("%w: name, quantity and price are required", common.ErrorValidation)
	}
	return &models.Product{Name: patch.Name.Value, Quantity: patch.Quantity.Value, Price: patch.Price.Value}, nil
}

func parseProductPatch(r *http.Request) (models.ProductPatch, error) {
	var p models.ProductPatch
	var err error

	p.Name = formString(r, "name")
	if p.Quantity, err = formInt(r, "quantity", "quantity"); err != nil {
		return p, err
	}
	if p.Price, err = formFloat(r, "price", "price"); err != nil {
		return p, err
	}
	return p, nil
}
