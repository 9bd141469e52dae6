package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"commanders-backend/internal/shared"
	"commanders-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupOrphanImagesJob()
}

// ================================================
// Cleanup Orphan Images (Weekly, Sunday 4 AM)
// ================================================
// Ảnh trở thành orphan khi proposal bị xóa/reject mà best-effort
// delete trên request path thất bại. Quét tuần một lần là đủ.
func (s *Scheduler) registerCleanupOrphanImagesJob() error {
	payload, err := json.Marshal(shared.CleanupOrphanImagesPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupOrphanImages, payload)

	_, err = s.scheduler.Register(
		"0 4 * * 0", // Sunday at 4 AM
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupOrphanImages job", err)
		return err
	}

	logger.Info("✓ Registered CleanupOrphanImages: weekly on Sunday at 4 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
