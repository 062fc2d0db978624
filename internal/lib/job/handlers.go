package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bookline/reservation/internal/config"
	"github.com/bookline/reservation/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// emailClient is a package-level singleton used by job handlers.
// InitHandlers must run before any task executes.
var emailClient *email.Client

// InitHandlers initializes dependencies required by job handlers.
func (j *JobService) InitHandlers(config *config.Config, logger *zerolog.Logger) {
	emailClient = email.NewClient(config, logger)
}

// handleReservationConfirmationTask processes a confirmation email task:
// decode the payload, send the email, and let Asynq retry on failure.
func (j *JobService) handleReservationConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var p ReservationConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal reservation confirmation payload: %w", err)
	}

	j.logger.Info().
		Str("type", "reservation_confirmation").
		Str("to", p.To).
		Msg("processing reservation confirmation task")

	err := emailClient.SendReservationConfirmation(p.To, p.ClientName, p.ReservationTime, p.PartySize)
	if err != nil {
		j.logger.Error().
			Str("type", "reservation_confirmation").
			Str("to", p.To).
			Err(err).
			Msg("failed to send reservation confirmation")
		// Returning the error makes Asynq mark the task failed and retry.
		return err
	}

	j.logger.Info().
		Str("type", "reservation_confirmation").
		Str("to", p.To).
		Msg("sent reservation confirmation")

	return nil
}
