// Package worker 封装了 asynq 后台任务的服务端与周期调度。
package worker

import (
	"context"
	"errors"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/tasks"
)

// WorkerServer 封装了 Asynq Worker Server 的启动和关闭逻辑
type WorkerServer struct {
	server         *asynq.Server
	scheduler      *asynq.Scheduler
	log            *logrus.Entry
	billingService *service.BillingService
}

// NewWorkerServer 创建一个新的 WorkerServer 实例
func NewWorkerServer(redisOpt asynq.RedisClientOpt, billingService *service.BillingService, logger *logrus.Logger) *WorkerServer {
	if billingService == nil {
		panic("BillingService cannot be nil for WorkerServer")
	}
	logEntry := logger.WithField("component", "worker_server")

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				taskID := ""
				if rw := task.ResultWriter(); rw != nil {
					taskID = rw.TaskID()
				}
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logEntry.WithFields(logrus.Fields{
					"task_id":   taskID,
					"task_type": task.Type(),
					"retries":   retryCount,
					"max_retry": maxRetry,
				}).Errorf("Task failed: %v", err)
			}),
		},
	)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	return &WorkerServer{
		server:         server,
		scheduler:      scheduler,
		log:            logEntry,
		billingService: billingService,
	}
}

// Start 运行 Worker Server 与周期调度器。
// 它应该在单独的 goroutine 中调用。
func (ws *WorkerServer) Start() {
	mux := asynq.NewServeMux()

	billDueScanHandler := NewBillDueScanHandler(ws.billingService)
	mux.HandleFunc(tasks.TypeBillDueScan, billDueScanHandler.ProcessTask)

	// 每小时扫描一次临期账单
	payload, err := tasks.NewBillDueScanPayload(defaultReminderDays)
	if err != nil {
		ws.log.Fatalf("Could not build bill due scan payload: %v", err)
	}
	if _, err := ws.scheduler.Register("@every 1h", asynq.NewTask(tasks.TypeBillDueScan, payload)); err != nil {
		ws.log.Fatalf("Could not register bill due scan schedule: %v", err)
	}

	go func() {
		ws.log.Info("Task scheduler starting...")
		if err := ws.scheduler.Run(); err != nil {
			ws.log.Errorf("Scheduler stopped with error: %v", err)
		}
	}()

	ws.log.Info("Worker server starting...")
	if err := ws.server.Run(mux); err != nil {
		if !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, asynq.ErrServerClosed) {
			ws.log.Fatalf("Could not run worker server: %v", err)
		} else {
			ws.log.Info("Worker server stopped.")
		}
	}
}

// Shutdown 优雅地关闭 Worker Server 与调度器。
func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	ws.scheduler.Shutdown()
	ws.server.Shutdown()
	ws.log.Info("Worker server shut down complete.")
}
