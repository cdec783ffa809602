package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/services"
)

const (
	msgLoginToDonate   = "You must log in to add a donation."
	msgDonationAdded   = "Donation added successfully"
	msgDonationUpdated = "Donation updated successfully"
	msgDonationDeleted = "Donation deleted successfully"
	msgNoEditPerm      = "You do not have permission to edit this donation."
	msgNoDeletePerm    = "You do not have permission to delete this donation."
)

type donationList struct {
	Donations []*models.DonationView
	Mine      bool
}

type donationForm struct {
	Action     string
	Donation   *models.Donation
	Categories []*models.Category
	Statuses   []*models.Status
}

// ListDonations shows every donation, or with ?mine=1 only those of the
// logged-in user.
func (h *Handlers) ListDonations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	mine := r.URL.Query().Get("mine") != ""

	var list []*models.DonationView
	var err error
	if mine {
		list, err = h.donations.ListByUser(r.Context(), UserIDFromContext(r.Context()), q)
	} else {
		list, err = h.donations.List(r.Context(), q)
	}
	if err != nil {
		h.fail(w, r, err, "/donations")
		return
	}

	title := "Donations"
	if mine {
		title = "My donations"
	}
	h.render(w, r, http.StatusOK, "donations", page{Title: title, Query: q, Data: donationList{Donations: list, Mine: mine}})
}

func (h *Handlers) NewDonationForm(w http.ResponseWriter, r *http.Request) {
	if UserIDFromContext(r.Context()) == 0 {
		h.redirectWithFlash(w, r, "/login", flashWarning, msgLoginToDonate)
		return
	}
	h.renderDonationForm(w, r, "/add", nil)
}

func (h *Handlers) CreateDonation(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == 0 {
		h.redirectWithFlash(w, r, "/login", flashWarning, msgLoginToDonate)
		return
	}

	in, err := parseNewDonation(r)
	if err != nil {
		h.fail(w, r, err, "/add")
		return
	}

	if _, err := h.donations.Create(r.Context(), userID, in); err != nil {
		h.fail(w, r, err, "/add")
		return
	}
	h.redirectWithFlash(w, r, "/donations", flashSuccess, msgDonationAdded)
}

func (h *Handlers) EditDonationForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "/donations")
		return
	}

	d, err := h.donations.GetOwned(r.Context(), UserIDFromContext(r.Context()), id)
	if err != nil {
		h.failDonation(w, r, err, msgNoEditPerm)
		return
	}
	h.renderDonationForm(w, r, fmt.Sprintf("/update/%d", id), d)
}

func (h *Handlers) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "/donations")
		return
	}

	patch, err := parseDonationPatch(r)
	if err != nil {
		h.fail(w, r, err, fmt.Sprintf("/update/%d", id))
		return
	}

	err = h.donations.Update(r.Context(), UserIDFromContext(r.Context()), id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.fail(w, r, err, fmt.Sprintf("/update/%d", id))
			return
		}
		h.failDonation(w, r, err, msgNoEditPerm)
		return
	}
	h.redirectWithFlash(w, r, "/donations", flashSuccess, msgDonationUpdated)
}

func (h *Handlers) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err, "/donations")
		return
	}

	if err := h.donations.Delete(r.Context(), UserIDFromContext(r.Context()), id); err != nil {
		h.failDonation(w, r, err, msgNoDeletePerm)
		return
	}
	h.redirectWithFlash(w, r, "/donations", flashSuccess, msgDonationDeleted)
}

// failDonation refuses anonymous and non-owner requests alike with the same
// message, so the response never tells who owns the donation.
func (h *Handlers) failDonation(w http.ResponseWriter, r *http.Request, err error, permMessage string) {
	if errors.Is(err, common.ErrorForbidden) || errors.Is(err, common.ErrorUnauthorized) {
		h.redirectWithFlash(w, r, "/donations", flashDanger, permMessage)
		return
	}
	h.fail(w, r, err, "/donations")
}

func (h *Handlers) renderDonationForm(w http.ResponseWriter, r *http.Request, action string, d *models.Donation) {
	categories, err := h.reference.Categories(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	statuses, err := h.reference.Statuses(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	title := "New donation"
	if d != nil {
		title = "Edit donation"
	}
	h.render(w, r, http.StatusOK, "donation_form", page{
		Title: title,
		Data:  donationForm{Action: action, Donation: d, Categories: categories, Statuses: statuses},
	})
}

func parseNewDonation(r *http.Request) (services.NewDonation, error) {
	var in services.NewDonation
	var err error

	in.Description = r.PostFormValue("description")
	if in.Quantity, err = formInt(r, "quantity", "quantity"); err != nil {
		return in, err
	}
	if in.Value, err = donationValue(r); err != nil {
		return in, err
	}
	category, err := formInt64(r, "category_id", "category")
	if err != nil {
		return in, err
	}
	if !category.Set {
		return in, fmt.Errorf("%w: category is required", common.ErrorValidation)
	}
	in.CategoryID = category.Value
	if in.StatusID, err = formInt64(r, "status_id", "status"); err != nil {
		return in, err
	}
	return in, nil
}

func parseDonationPatch(r *http.Request) (models.DonationPatch, error) {
	var p models.DonationPatch
	var err error

	p.Description = formString(r, "description")
	if p.Quantity, err = formInt(r, "quantity", "quantity"); err != nil {
		return p, err
	}
	if p.Value, err = donationValue(r); err != nil {
		return p, err
	}
	if p.CategoryID, err = formInt64(r, "category_id", "category"); err != nil {
		return p, err
	}
	return p, nil
}

// donationValue reads the donation value, posted as "price" by the form and
// accepted as "value" too.
func donationValue(r *http.Request) (models.Optional[float64], error) {
	key := "price"
	if r.PostFormValue(key) == "" {
		key = "value"
	}
	return formFloat(r, key, "value")
}

// apiDonation is the JSON shape served by /api/donations.
type apiDonation struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Value       float64 `json:"value"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
}

func (h *Handlers) APIDonations(w http.ResponseWriter, r *http.Request) {
	list, err := h.donations.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.jsonError(w, r, err)
		return
	}

	out := make([]apiDonation, 0, len(list))
	for _, d := range list {
		out = append(out, apiDonation{
			ID:          d.ID,
			Description: d.Description,
			Quantity:    d.Quantity,
			Value:       d.Value,
			Category:    d.CategoryName,
			Status:      d.StatusName,
		})
	}
	h.json(w, http.StatusOK, out)
}
