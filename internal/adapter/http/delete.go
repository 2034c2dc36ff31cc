package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dotgov/registrar/internal/app"
	"github.com/dotgov/registrar/internal/domain"
)

// Form field and header names the delete endpoints require. Both must carry
// a valid token on every mutating request.
const (
	CSRFFormField = "csrfmiddlewaretoken"
	CSRFHeader    = "X-CSRFToken"
)

// DeleteHandler serves the form-encoded delete endpoints used by the table
// loader, plus the token endpoint that arms them.
type DeleteHandler struct {
	requests *app.RequestService
	members  *app.MemberService
	csrf     *CSRF
	logger   *slog.Logger
}

// NewDeleteHandler wires the delete routes' dependencies.
func NewDeleteHandler(requests *app.RequestService, members *app.MemberService, csrf *CSRF, logger *slog.Logger) *DeleteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteHandler{requests: requests, members: members, csrf: csrf, logger: logger}
}

// Mount registers the delete and token routes on the router.
func (h *DeleteHandler) Mount(r chi.Router) {
	r.Get("/csrf-token/", h.issueToken)
	r.Post("/domain-request/{id}/delete", h.deleteRequest)
	r.Post("/member/{id}/delete", h.deleteMember)
}

func (h *DeleteHandler) issueToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrf.Issue()
	if err != nil {
		h.logger.Error("issuing csrf token", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"csrf_token": token})
}

// guard validates the double-submitted token and writes 403 on failure.
func (h *DeleteHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}

	for _, token := range []string{r.PostFormValue(CSRFFormField), r.Header.Get(CSRFHeader)} {
		if err := h.csrf.Verify(token); err != nil {
			h.logger.Warn("rejected delete", "path", r.URL.Path, "error", err)
			http.Error(w, "forbidden", http.StatusForbidden)
			return false
		}
	}
	return true
}

func (h *DeleteHandler) deleteRequest(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.requests.Delete(r.Context(), id); err != nil {
		h.writeDeleteError(w, r, id, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *DeleteHandler) deleteMember(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.members.Remove(r.Context(), id); err != nil {
		h.writeDeleteError(w, r, id, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *DeleteHandler) writeDeleteError(w http.ResponseWriter, r *http.Request, id string, err error) {
	var delErr *domain.NotDeletableError
	switch {
	case errors.As(err, &delErr):
		http.Error(w, delErr.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrRequestNotFound), errors.Is(err, domain.ErrMemberNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		h.logger.Error("delete failed", "path", r.URL.Path, "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
