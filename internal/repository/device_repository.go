package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"photofeed/internal/models"
)

type deviceRepository struct {
	db *sqlx.DB
}

func NewDeviceRepository(db *sqlx.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

// Register stores the device, moving an existing registration id to the caller.
func (r *deviceRepository) Register(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (user_id, registration_id, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (registration_id) DO UPDATE
			SET user_id = EXCLUDED.user_id, type = EXCLUDED.type, active = TRUE
		RETURNING device_id, active, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, device.UserID, device.RegistrationID, device.Type)
	if err := row.Scan(&device.DeviceID, &device.Active, &device.CreatedAt); err != nil {
		return wrap("register device", err)
	}
	return nil
}

func (r *deviceRepository) ListActiveByUser(ctx context.Context, userID string) ([]models.Device, error) {
	devices := []models.Device{}
	query := `
		SELECT device_id, user_id, registration_id, type, active, created_at
		FROM devices WHERE user_id = $1 AND active
		ORDER BY device_id
	`
	if err := r.db.SelectContext(ctx, &devices, query, userID); err != nil {
		return nil, wrap("list devices", err)
	}
	return devices, nil
}
