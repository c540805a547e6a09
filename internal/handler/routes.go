package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every endpoint. mws run for matched routes only, in
// the order given.
func NewRouter(h *Handlers, metrics http.Handler, mws ...mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "", http.StatusMethodNotAllowed)
	})
	router.Use(mws...)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	if metrics != nil {
		router.Handle("/metrics", metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset", h.RequestReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset/confirm", h.ConfirmReset).Methods(http.MethodPost)

	api.HandleFunc("/me", h.GetCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/me/actions", h.RecordAction).Methods(http.MethodPost)
	api.HandleFunc("/devices", h.ListDevices).Methods(http.MethodGet)
	api.HandleFunc("/devices", h.RegisterDevice).Methods(http.MethodPost)

	api.HandleFunc("/photos", h.CreatePhoto).Methods(http.MethodPost)
	api.HandleFunc("/photos/top", h.TopPhotos).Methods(http.MethodGet)
	api.HandleFunc("/aov-web/photos/top", h.TopPhotos).Methods(http.MethodGet)
	api.HandleFunc("/photos/{id:[0-9]+}", h.GetPhoto).Methods(http.MethodGet)
	api.HandleFunc("/photos/{id:[0-9]+}", h.DeletePhoto).Methods(http.MethodDelete)
	api.HandleFunc("/photos/{id:[0-9]+}", h.PatchPhoto).Methods(http.MethodPatch)
	api.HandleFunc("/photos/{id:[0-9]+}/votes", h.VotePhoto).Methods(http.MethodPatch)
	api.HandleFunc("/photos/{id:[0-9]+}/flags", h.FlagPhoto).Methods(http.MethodPost)
	api.HandleFunc("/photos/{id:[0-9]+}/comments", h.ListComments).Methods(http.MethodGet)
	api.HandleFunc("/photos/{id:[0-9]+}/comments", h.CreateComment).Methods(http.MethodPost)
	api.HandleFunc("/photos/{id:[0-9]+}/comments/{comment_id:[0-9]+}/replies", h.CreateReply).Methods(http.MethodPost)

	api.HandleFunc("/photo_feeds", h.ListFeeds).Methods(http.MethodGet)
	api.HandleFunc("/photo_feeds/{id:[0-9]+}/photos", h.FeedPhotos).Methods(http.MethodGet)
	api.HandleFunc("/photo_classifications", h.ListClassifications).Methods(http.MethodGet)
	api.HandleFunc("/photo_classifications", h.CreateClassification).Methods(http.MethodPost)
	api.HandleFunc("/photo_classifications/{id:[0-9]+}/photos", h.ClassificationPhotos).Methods(http.MethodGet)

	return router
}
