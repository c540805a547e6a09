package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"photofeed/internal/config"
	"photofeed/internal/service"
)

type Handlers struct {
	UserService           service.UserService
	AuthService           service.AuthService
	PhotoService          service.PhotoService
	RankingService        service.RankingService
	CommentService        service.CommentService
	FeedService           service.FeedService
	ClassificationService service.ClassificationService
	ActionService         service.ActionService
	DeviceService         service.DeviceService
	ResetService          service.ResetService
	HealthService         service.HealthService
	Cfg                   *config.Config
	Validate              *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		UserService:           service.User,
		AuthService:           service.Auth,
		PhotoService:          service.Photo,
		RankingService:        service.Ranking,
		CommentService:        service.Comment,
		FeedService:           service.Feed,
		ClassificationService: service.Classification,
		ActionService:         service.Action,
		DeviceService:         service.Device,
		ResetService:          service.Reset,
		HealthService:         service.Health,
		Cfg:                   config,
		Validate:              validator.New(),
	}
}

// decode reads a JSON body into dst and validates it. It writes the 400
// response itself and reports whether the handler may continue.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return false
	}

	if err := h.Validate.Struct(dst); err != nil {
		writeServiceError(w, r, err)
		return false
	}

	return true
}
