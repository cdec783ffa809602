package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/solidarias/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handlers, l logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, middleware.RealIP, Logger(l), middleware.Recoverer, h.Session)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.notFound(w, r, "Page not found.")
	})

	r.Get("/", h.Index)
	r.Get("/about", h.About)

	// Donations
	r.Get("/donations", h.ListDonations)
	r.Get("/add", h.NewDonationForm)
	r.Post("/add", h.CreateDonation)
	r.Get("/update/{id}", h.EditDonationForm)
	r.Post("/update/{id}", h.UpdateDonation)
	r.Post("/delete/{id}", h.DeleteDonation)

	// Products
	r.Get("/list", h.ListProducts)
	r.Route("/products", func(r chi.Router) {
		r.Get("/add", h.NewProductForm)
		r.Post("/add", h.CreateProduct)
		r.Get("/update/{id}", h.EditProductForm)
		r.Post("/update/{id}", h.UpdateProduct)
		r.Post("/delete/{id}", h.DeleteProduct)
	})
	r.Get("/save/{format}", h.SaveProducts)

	// Accounts
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.APIProducts)
		r.Get("/donations", h.APIDonations)
	})

	return r
}
