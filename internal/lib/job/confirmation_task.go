package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskReservationConfirmation is the job type name stored in Redis;
	// Asynq uses it to route tasks to handlers.
	TaskReservationConfirmation = "email:reservation_confirmation"
)

// ReservationConfirmationPayload is the JSON payload for the
// confirmation email task.
type ReservationConfirmationPayload struct {
	To              string `json:"to"`
	ClientName      string `json:"client_name"`
	ReservationTime string `json:"reservation_time"`
	PartySize       int    `json:"party_size"`
}

// NewReservationConfirmationTask constructs an Asynq task for sending
// a reservation confirmation email.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default")
//   - Timeout(30s): kill the handler if it runs longer
func NewReservationConfirmationTask(to, clientName, reservationTime string, partySize int) (*asynq.Task, error) {
	payload, err := json.Marshal(ReservationConfirmationPayload{
		To:              to,
		ClientName:      clientName,
		ReservationTime: reservationTime,
		PartySize:       partySize,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReservationConfirmation,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
