package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"photofeed/internal/service"
)

type VoteRequest struct {
	Operation string `json:"operation"`
}

type ActionRequest struct {
	Action string `json:"action" validate:"required"`
	ID     int64  `json:"id" validate:"required,gt=0"`
}

func (h *Handlers) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("File too large (max %s).", humanize.IBytes(uint64(h.Cfg.MaxUploadSize))), http.StatusBadRequest)
		} else {
			WriteError(w, "Invalid multipart form.", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Missing required field 'image' in request data.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := h.PhotoService.Create(r.Context(), service.CreatePhotoRequest{
		OwnerID:    principal.UserID,
		FileName:   header.Filename,
		File:       file,
		Size:       header.Size,
		Caption:    r.FormValue("caption"),
		Location:   r.FormValue("location"),
		Categories: formList(r, "category"),
		Tags:       formList(r, "tag"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, photo, http.StatusCreated)
}

// formList collects repeated and comma separated values of a form field.
func formList(r *http.Request, key string) []string {
	var out []string
	for _, value := range r.MultipartForm.Value[key] {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	photo, err := h.PhotoService.Get(r.Context(), photoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, photo, http.StatusOK)
}

func (h *Handlers) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	if err := h.PhotoService.Delete(r.Context(), principal, photoID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, map[string]string{}, http.StatusOK)
}

func (h *Handlers) PatchPhoto(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	var req service.PatchPhotoRequest
	if !h.decode(w, r, &req) {
		return
	}

	photo, err := h.PhotoService.Patch(r.Context(), principal, photoID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, photo, http.StatusOK)
}

func (h *Handlers) VotePhoto(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	var req VoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	photo, err := h.PhotoService.Vote(r.Context(), principal, photoID, req.Operation)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, photo, http.StatusOK)
}

func (h *Handlers) FlagPhoto(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	photoID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, "", http.StatusNotFound)
		return
	}

	created, err := h.PhotoService.Flag(r.Context(), principal, photoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(w, map[string]string{}, status)
}

func (h *Handlers) TopPhotos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, ok := dimension(q.Get("width"))
	if !ok {
		WriteError(w, "Invalid width.", http.StatusBadRequest)
		return
	}
	height, ok := dimension(q.Get("height"))
	if !ok {
		WriteError(w, "Invalid height.", http.StatusBadRequest)
		return
	}
	paging := parsePaging(r)

	page, err := h.RankingService.Top(r.Context(), service.TopQuery{
		DisplayPage: q.Get("display_page"),
		Paging:      paging,
		Width:       width,
		Height:      height,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, newPageResponse(r, paging, page.Count, page.HasNext, page.Results), http.StatusOK)
}

// dimension parses an optional render size. Absent is zero.
func dimension(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (h *Handlers) RecordAction(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req ActionRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.ActionService.Record(r.Context(), principal, req.Action, req.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, map[string]string{}, http.StatusOK)
}
