// Package httpapi is the web surface: a chi router serving HTML pages for
// donations, products and accounts, plus a small JSON API and file exports.
//
// Sessions are stateless signed JWTs kept in a cookie. Logging out deletes
// the cookie in the browser but does not revoke the token: a copy of it
// stays valid until it expires after the configured session validity.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/logging"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/services"
	"github.com/go-chi/chi/v5"
)

// Services bundles the business logic the handlers call into.
type Services struct {
	Users     *services.UserService
	Donations *services.DonationService
	Products  *services.ProductService
	Reference *services.ReferenceService
	Exports   *services.ExportService
}

type Handlers struct {
	users        *services.UserService
	donations    *services.DonationService
	products     *services.ProductService
	reference    *services.ReferenceService
	exports      *services.ExportService
	logger       logging.Logger
	renderer     *renderer
	cookieSecure bool
}

func NewHandlers(svc Services, logger logging.Logger, cookieSecure bool) (*Handlers, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		users:        svc.Users,
		donations:    svc.Donations,
		products:     svc.Products,
		reference:    svc.Reference,
		exports:      svc.Exports,
		logger:       logger.With("module", "http"),
		renderer:     r,
		cookieSecure: cookieSecure,
	}, nil
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index", page{Title: "Home"})
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about", page{Title: "About"})
}

// fail maps a service error onto a response. Validation and permission
// problems go back to the page at back with a message, missing rows get a
// 404 page, missing sessions go to the login page and anything else is a
// logged 500.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, back string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.notFound(w, r, "The requested item does not exist.")
	case errors.Is(err, common.ErrorUnauthorized):
		h.redirectWithFlash(w, r, "/login", flashWarning, "Please log in first.")
	case errors.Is(err, common.ErrorForbidden):
		h.redirectWithFlash(w, r, back, flashDanger, "You do not have permission to do that.")
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		h.redirectWithFlash(w, r, back, flashDanger, userMessage(err))
	default:
		h.serverError(w, r, err)
	}
}

// userMessage turns "validation error: quantity must be a whole number"
// into "Quantity must be a whole number."
func userMessage(err error) string {
	msg := err.Error()
	for _, prefix := range []error{common.ErrorValidation, common.ErrorAlreadyExists} {
		if msg == prefix.Error() {
			msg = ""
			break
		}
		msg = strings.TrimPrefix(msg, prefix.Error()+": ")
	}
	if msg == "" {
		return "Invalid input."
	}
	first, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(first)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

// pathID reads the {id} route parameter. Malformed ids are reported as
// not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

// formInt reads an optional integer field; blank means absent.
func formInt(r *http.Request, key, label string) (models.Optional[int], error) {
	v := strings.TrimSpace(r.PostFormValue(key))
	if v == "" {
		return models.Optional[int]{}, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return models.Optional[int]{}, fmt.Errorf("%w: %s must be a whole number", common.ErrorValidation, label)
	}
	return models.Some(n), nil
}

// formInt64 reads an optional id field; blank means absent.
func formInt64(r *http.Request, key, label string) (models.Optional[int64], error) {
	v := strings.TrimSpace(r.PostFormValue(key))
	if v == "" {
		return models.Optional[int64]{}, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return models.Optional[int64]{}, fmt.Errorf("%w: %s is not valid", common.ErrorValidation, label)
	}
	return models.Some(n), nil
}

// formFloat reads an optional decimal field; blank means absent.
func formFloat(r *http.Request, key, label string) (models.Optional[float64], error) {
	v := strings.TrimSpace(r.PostFormValue(key))
	if v == "" {
		return models.Optional[float64]{}, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return models.Optional[float64]{}, fmt.Errorf("%w: %s must be a number", common.ErrorValidation, label)
	}
	return models.Some(f), nil
}

// formString reads an optional text field; blank means absent.
func formString(r *http.Request, key string) models.Optional[string] {
	v := strings.TrimSpace(r.PostFormValue(key))
	if v == "" {
		return models.Optional[string]{}
	}
	return models.Some(v)
}
