package job

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/httpapi"
)

// Handler exposes job routes:
//
//	POST   /jobs          → create posting
//	GET    /jobs          → list (category/status/search filters)
//	GET    /jobs/{jobId}  → fetch one
//	PUT    /jobs/{jobId}  → owner-only update
//	DELETE /jobs/{jobId}  → owner-only delete
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all job routes on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/jobs", h.create).Methods(http.MethodPost)
	r.HandleFunc("/jobs", h.list).Methods(http.MethodGet)
	r.HandleFunc("/jobs/{jobId}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/jobs/{jobId}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/jobs/{jobId}", h.delete).Methods(http.MethodDelete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	j, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), in)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.Created(w, "job", j)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filters{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	}

	jobs, err := h.svc.List(r.Context(), f)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.OK(w, "jobs", jobs)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.Get(r.Context(), mux.Vars(r)["jobId"])
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.OK(w, "job", j)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	j, err := h.svc.Update(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["jobId"], in)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.OK(w, "job", j)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["jobId"]); err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.Message(w, "job deleted")
}
