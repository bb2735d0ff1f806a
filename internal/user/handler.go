package user

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/httpapi"
)

// Handler exposes account routes. Register and login are public; /me requires
// a bearer token.
type Handler struct {
	svc  *Service
	auth *auth.Auth
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service, a *auth.Auth) *Handler {
	return &Handler{svc: svc, auth: a}
}

// RegisterPublicRoutes mounts the unauthenticated routes on r.
func (h *Handler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
}

// RegisterProtectedRoutes mounts the authenticated routes on r.
func (h *Handler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/me", h.me).Methods(http.MethodGet)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u, err := h.svc.Register(r.Context(), in)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}

	token, err := h.auth.IssueToken(u.ID)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, httpapi.Body{
		"success": true,
		"user":    u,
		"token":   token,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u, err := h.svc.Login(r.Context(), in)
	if err != nil {
		httpapi.Error(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.auth.IssueToken(u.ID)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.Body{
		"success": true,
		"user":    u,
		"token":   token,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.OK(w, "user", u)
}
