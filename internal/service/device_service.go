package service

import (
	"context"

	"photofeed/internal/models"
	"photofeed/internal/repository"
)

type RegisterDeviceRequest struct {
	RegistrationID string `json:"registrationId" validate:"required"`
	Type           string `json:"type" validate:"required,oneof=ios android web"`
}

type DeviceService interface {
	Register(ctx context.Context, caller *models.Principal, req RegisterDeviceRequest) (*models.Device, error)
	List(ctx context.Context, caller *models.Principal) ([]models.Device, error)
}

type deviceService struct {
	deviceRepo repository.DeviceRepository
}

func NewDeviceService(deviceRepo repository.DeviceRepository) DeviceService {
	return &deviceService{deviceRepo: deviceRepo}
}

// Register binds the registration id to the caller, taking it over from any
// previous owner.
func (s *deviceService) Register(ctx context.Context, caller *models.Principal, req RegisterDeviceRequest) (*models.Device, error) {
	device := &models.Device{
		UserID:         caller.UserID,
		RegistrationID: req.RegistrationID,
		Type:           req.Type,
		Active:         true,
	}

	if err := s.deviceRepo.Register(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *deviceService) List(ctx context.Context, caller *models.Principal) ([]models.Device, error) {
	return s.deviceRepo.ListActiveByUser(ctx, caller.UserID)
}
