package handlers

import (
	"net/http"
	"strconv"

	"photofeed/internal/service"
)

func (h *Handlers) ListFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.FeedService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, feeds, http.StatusOK)
}

func (h *Handlers) FeedPhotos(w http.ResponseWriter, r *http.Request) {
	feedID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	paging := parsePaging(r)
	photos, total, err := h.FeedService.Photos(r.Context(), feedID, paging)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, newPageResponse(r, paging, total, paging.HasNext(total), photos), http.StatusOK)
}

func (h *Handlers) ListClassifications(w http.ResponseWriter, r *http.Request) {
	classifications, err := h.ClassificationService.List(r.Context(), r.URL.Query().Get("classification"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, classifications, http.StatusOK)
}

func (h *Handlers) CreateClassification(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	var req service.CreateClassificationRequest
	if !h.decode(w, r, &req) {
		return
	}

	classification, created, err := h.ClassificationService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(w, classification, status)
}

func (h *Handlers) ClassificationPhotos(w http.ResponseWriter, r *http.Request) {
	classificationID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	length, _ := strconv.Atoi(q.Get("length"))

	photos, err := h.ClassificationService.Photos(r.Context(), classificationID, service.ClassificationPhotosQuery{
		ClassificationType: q.Get("classification"),
		DisplayTab:         q.Get("display_tab"),
		Length:             length,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, photos, http.StatusOK)
}
