// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued through an
// asynq.Client (producer) and executed by workers run by an
// asynq.Server (consumer).
package job

import (
	"github.com/bookline/reservation/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	// server runs worker processes that pull tasks from Redis.
	server *asynq.Server

	logger *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// It builds both the enqueueing client and the worker server, with
// queue weights so critical tasks get a larger worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	// Concurrency 10 with 6:3:1 weights across critical/default/low.
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the background worker server.
func (j *JobService) Start() error {
	// ServeMux routes task type -> handler, like HTTP routing for jobs.
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskReservationConfirmation, j.handleReservationConfirmationTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
