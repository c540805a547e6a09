package notify

import (
	"context"

	"github.com/rs/zerolog"

	"photofeed/internal/models"
)

// LogPusher writes each push to the log instead of a provider.
type LogPusher struct {
	Log zerolog.Logger
}

func (p LogPusher) Push(_ context.Context, device models.Device, msg Message) error {
	p.Log.Info().
		Int64("device_id", device.DeviceID).
		Str("device_type", device.Type).
		Str("action", msg.Action).
		Int64("object_id", msg.ObjectID).
		Str("message", msg.Text).
		Msg("push")
	return nil
}
