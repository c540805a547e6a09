package handlers

import (
	"net/http"

	"photofeed/internal/service"
)

type CommentRequest struct {
	Comment  string   `json:"comment"`
	Mentions []string `json:"mentions"`
}

type ReplyRequest struct {
	Reply    string   `json:"reply"`
	Mentions []string `json:"mentions"`
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	comments, err := h.CommentService.List(r.Context(), photoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	var req CommentRequest
	if !h.decode(w, r, &req) {
		return
	}

	comment, _, err := h.CommentService.Create(r.Context(), principal, photoID, service.CommentRequest{
		Comment:  req.Comment,
		Mentions: req.Mentions,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) CreateReply(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}
	commentID, ok := pathID(r, "comment_id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	var req ReplyRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, _, err := h.CommentService.Reply(r.Context(), principal, photoID, commentID, service.CommentRequest{
		Comment:  req.Reply,
		Mentions: req.Mentions,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, reply, http.StatusCreated)
}
