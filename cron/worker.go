package cron

import (
	"context"
	"fmt"
	"time"

	"roomly/config"
	bookingRepo "roomly/database/repository/booking"
	"roomly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingSweep = "booking:sweep"

// InitBookingSweeper starts the background worker and periodic schedule that
// mark past bookings completed. Runs until the process exits.
func InitBookingSweeper(bookings bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingSweep, handleSweepTask(bookings))

	interval := config.AppConfig.BookingSweepMinutes
	if interval <= 0 {
		interval = 10
	}
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	cronspec := fmt.Sprintf("@every %dm", interval)
	if _, err := scheduler.Register(cronspec, asynq.NewTask(TypeBookingSweep, nil)); err != nil {
		utils.GetLogger().Fatal("failed to register booking sweep schedule", zap.Error(err))
	}

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting booking sweep worker", zap.Int("interval_minutes", interval))

		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("booking sweep worker failed to start",
					zap.Int("attempt", attempt), zap.Error(err))
				if attempt == maxAttempts {
					logger.Fatal("booking sweep worker exhausted retries")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
				continue
			}
			break
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			utils.GetLogger().Error("booking sweep scheduler stopped", zap.Error(err))
		}
	}()
}

func handleSweepTask(bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		swept, err := bookings.CompleteEnded(time.Now().UTC())
		if err != nil {
			utils.GetLogger().Error("booking sweep failed", zap.Error(err))
			return err
		}
		if swept > 0 {
			utils.GetLogger().Info("marked ended bookings completed", zap.Int64("count", swept))
		}
		return nil
	}
}
