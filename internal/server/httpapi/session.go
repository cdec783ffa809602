package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/solidarias/internal/common"
)

type contextKey string

const userIDKey contextKey = "user_id"

// WithUserID returns ctx carrying the id of the logged-in user.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the logged-in user id, or 0 for anonymous
// requests.
func UserIDFromContext(ctx context.Context) int64 {
	if v, ok := ctx.Value(userIDKey).(int64); ok {
		return v
	}
	return 0
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string, validity time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(validity.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash kinds, used as CSS classes.
const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashDanger  = "danger"
)

// flash is a one-shot message shown on the next rendered page.
type flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

func (h *Handlers) setFlash(w http.ResponseWriter, kind, message string) {
	b, err := json.Marshal(flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func (h *Handlers) popFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(common.FlashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	return decodeFlash(c.Value)
}

func decodeFlash(value string) *flash {
	b, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	f := &flash{}
	if err := json.Unmarshal(b, f); err != nil || f.Message == "" {
		return nil
	}
	return f
}

// redirectWithFlash stores a flash message and sends the browser to target.
func (h *Handlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	h.setFlash(w, kind, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
