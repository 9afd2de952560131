package jobs

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// Worker รวม asynq server และ scheduler ของงานประจำวัน
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	cronSpec  string
}

func NewWorker(redisAddr string, marker *AbsenceMarker, cronSpec string, loc *time.Location) *Worker {
	opt := asynq.RedisClientOpt{Addr: redisAddr}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMarkAbsent, marker.HandleMarkAbsentTask)

	return &Worker{
		server: asynq.NewServer(opt, asynq.Config{
			Concurrency: 2,
			Queues:      map[string]int{"default": 1},
		}),
		scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: loc}),
		mux:       mux,
		cronSpec:  cronSpec,
	}
}

// Start เริ่ม server และลงทะเบียน cron ของ mark absent
func (w *Worker) Start() error {
	task, err := NewMarkAbsentTask("")
	if err != nil {
		return err
	}
	entryID, err := w.scheduler.Register(w.cronSpec, task)
	if err != nil {
		return err
	}
	log.Printf("✅ scheduled %s (%s) entry=%s", TypeMarkAbsent, w.cronSpec, entryID)

	if err := w.scheduler.Start(); err != nil {
		return err
	}
	if err := w.server.Start(w.mux); err != nil {
		w.scheduler.Shutdown()
		return err
	}
	log.Println("✅ Asynq worker started")
	return nil
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

// EnqueueMarkAbsent ใช้จาก endpoint admin ถ้าไม่มี client ให้รันทันที
func EnqueueMarkAbsent(ctx context.Context, client *asynq.Client, marker *AbsenceMarker, date string) (queued bool, marked int, err error) {
	if client == nil {
		marked, err = marker.MarkAbsent(ctx, date)
		return false, marked, err
	}
	task, err := NewMarkAbsentTask(date)
	if err != nil {
		return false, 0, err
	}
	info, err := client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		return false, 0, err
	}
	log.Printf("✅ enqueued %s id=%s", TypeMarkAbsent, info.ID)
	return true, 0, nil
}
