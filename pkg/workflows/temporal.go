package workflows

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/vetclinic/pkg/config"
	"github.com/ghuser/vetclinic/pkg/logger"
)

// TemporalClient wraps the Temporal SDK client together with the tracing
// interceptor shared by workers created from it.
type TemporalClient struct {
	Client    client.Client
	Namespace string
	TaskQueue string

	tracing interceptor.Interceptor
	log     logger.Logger
}

// NewTemporalClient dials the Temporal frontend configured in cfg.
// Call Close when the process shuts down.
func NewTemporalClient(ctx context.Context, cfg *config.Config, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("temporal"),
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal otel interceptor: %w", err)
	}

	c, err := client.DialContext(ctx, client.Options{
		HostPort:     cfg.TemporalHostPort,
		Namespace:    cfg.TemporalNamespace,
		Logger:       newTemporalLogger(log),
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal server at %s: %w", cfg.TemporalHostPort, err)
	}

	log.Info("temporal client connected",
		"host_port", cfg.TemporalHostPort,
		"namespace", cfg.TemporalNamespace,
		"task_queue", cfg.TemporalTaskQueue,
	)

	return &TemporalClient{
		Client:    c,
		Namespace: cfg.TemporalNamespace,
		TaskQueue: cfg.TemporalTaskQueue,
		tracing:   tracing,
		log:       log,
	}, nil
}

// NewWorker returns a worker polling the client's task queue. Workflows and
// activities must be registered before Start or Run.
func (tc *TemporalClient) NewWorker() worker.Worker {
	return worker.New(tc.Client, tc.TaskQueue, worker.Options{
		Interceptors: []interceptor.WorkerInterceptor{tc.tracing},
	})
}

// Close shuts down the client connection.
func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal client closed")
}

// temporalLogger adapts logger.Logger to Temporal's log.Logger.
type temporalLogger struct {
	log logger.Logger
}

func newTemporalLogger(log logger.Logger) temporallog.Logger {
	return &temporalLogger{log: log.With("component", "temporal")}
}

func (l *temporalLogger) Debug(msg string, keyvals ...any) { l.log.Debug(msg, keyvals...) }
func (l *temporalLogger) Info(msg string, keyvals ...any)  { l.log.Info(msg, keyvals...) }
func (l *temporalLogger) Warn(msg string, keyvals ...any)  { l.log.Warn(msg, keyvals...) }
func (l *temporalLogger) Error(msg string, keyvals ...any) { l.log.Error(msg, keyvals...) }
