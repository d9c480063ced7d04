package jobs

import (
	"log"

	"Backend-Parsamooz/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq worker and the daily scheduler. It blocks, so
// main runs it in a goroutine. A missing Redis connection disables background
// jobs instead of failing startup.
func StartWorker() {
	if database.RedisClient == nil {
		log.Println("⚠️ Redis not available — background jobs disabled")
		return
	}

	redisOpt := asynq.RedisClientOpt{Addr: database.RedisURI}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBirthdayScan, HandleBirthdayScanTask)

	scheduler := asynq.NewScheduler(redisOpt, nil)
	task, err := NewBirthdayScanTask("")
	if err != nil {
		log.Println("❌ Failed to build birthday scan task:", err)
		return
	}
	// 07:00 Tehran-local is handled by the host clock; the worker runs daily.
	if _, err := scheduler.Register("0 7 * * *", task); err != nil {
		log.Println("❌ Failed to register birthday scan schedule:", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Println("❌ Scheduler stopped:", err)
		}
	}()

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{"default": 1},
	})

	log.Println("✅ Background worker started")
	if err := srv.Run(mux); err != nil {
		log.Println("❌ Worker stopped:", err)
	}
}
