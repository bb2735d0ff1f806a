package discussion

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/httpapi"
)

// Handler exposes discussion routes:
//
//	POST   /jobs/{jobId}/comments        → add comment
//	GET    /jobs/{jobId}/comments        → comments with nested replies
//	DELETE /comments/{commentId}         → author-only delete (replies cascade)
//	POST   /comments/{commentId}/replies → add reply
//	GET    /comments/{commentId}/replies → replies oldest first
//	DELETE /replies/{replyId}            → author-only delete
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all discussion routes on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/jobs/{jobId}/comments", h.createComment).Methods(http.MethodPost)
	r.HandleFunc("/jobs/{jobId}/comments", h.listComments).Methods(http.MethodGet)
	r.HandleFunc("/comments/{commentId}", h.deleteComment).Methods(http.MethodDelete)
	r.HandleFunc("/comments/{commentId}/replies", h.createReply).Methods(http.MethodPost)
	r.HandleFunc("/comments/{commentId}/replies", h.listReplies).Methods(http.MethodGet)
	r.HandleFunc("/replies/{replyId}", h.deleteReply).Methods(http.MethodDelete)
}

type contentBody struct {
	Content string `json:"content"`
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	var body contentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := h.svc.CreateComment(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["jobId"], body.Content)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.Created(w, "comment", c)
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.ListForJob(r.Context(), mux.Vars(r)["jobId"])
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.OK(w, "comments", comments)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteComment(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["commentId"]); err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.Message(w, "comment deleted")
}

func (h *Handler) createReply(w http.ResponseWriter, r *http.Request) {
	var body contentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reply, err := h.svc.CreateReply(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["commentId"], body.Content)
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.Created(w, "reply", reply)
}

func (h *Handler) listReplies(w http.ResponseWriter, r *http.Request) {
	replies, err := h.svc.ListReplies(r.Context(), mux.Vars(r)["commentId"])
	if err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.OK(w, "replies", replies)
}

func (h *Handler) deleteReply(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteReply(r.Context(), auth.UserID(r.Context()), mux.Vars(r)["replyId"]); err != nil {
		httpapi.WriteServiceError(w, err)
		return
	}
	httpapi.Message(w, "reply deleted")
}
