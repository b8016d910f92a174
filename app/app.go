package app

import (
	"errors"
	"sync"
	"time"

	"github.com/embeddedengine-io/embeddedengine"
	"github.com/embeddedengine-io/embeddedengine/config"
	"github.com/embeddedengine-io/embeddedengine/eventbus"
	"github.com/embeddedengine-io/embeddedengine/pkg/dispatchlog"
	"github.com/embeddedengine-io/embeddedengine/pkg/log"
	"github.com/embeddedengine-io/embeddedengine/pkg/metrics"
	"github.com/embeddedengine-io/embeddedengine/pkg/pool"
	"github.com/embeddedengine-io/embeddedengine/pkg/registry"
	"github.com/embeddedengine-io/embeddedengine/pkg/safe"
	"github.com/embeddedengine-io/embeddedengine/pkg/schedule"
	"github.com/embeddedengine-io/embeddedengine/pkg/stats"
	"github.com/embeddedengine-io/embeddedengine/scheduler"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

var (
	ErrApplicationStarted = errors.New("already started")
	ErrApplicationStopped = errors.New("already stopped")
)

const statsReportInterval = time.Minute

// Application wires the runtime together: configuration, logging,
// metrics, the event bus, the cooperative scheduler with its run loop,
// and background housekeeping.
type Application struct {
	nodeID string

	cfg *config.Config

	mux     sync.Mutex
	started bool

	signal chan struct{}
	stop   chan struct{}

	log          *zap.SugaredLogger
	executor     *pool.Pool
	bus          *eventbus.EventBus
	metrics      *metrics.Metrics
	scheduler    *scheduler.Scheduler
	registry     *registry.Registry
	stats        *stats.Collector
	housekeeping *schedule.Scheduler
}

func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		nodeID: uuid.NewV4().String(),
		cfg:    cfg,
		signal: make(chan struct{}),
		stop:   make(chan struct{}, 1),
	}

	err := app.initialize()
	if err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) initialize() error {
	cfg := app.cfg

	logger, err := log.NewZapLogger(&cfg.Log)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger.Desugar())
	app.log = logger

	app.metrics, err = metrics.New(cfg.Metrics)
	if err != nil {
		return err
	}

	app.executor = pool.NewPool(int(cfg.Engine.Pool.Size), int(cfg.Engine.Pool.Concurrency))
	app.bus = eventbus.NewEventBus(logger, app.executor)
	registerEventHandler(app)

	var dispatchLogger dispatchlog.Logger
	if cfg.DispatchLog.Enabled {
		dispatchLogger, err = dispatchlog.NewLogger("dispatch", dispatchlog.Options{
			File:    cfg.DispatchLog.File,
			Format:  string(cfg.DispatchLog.Format),
			Colored: cfg.DispatchLog.Colored,
		})
		if err != nil {
			return err
		}
	}

	app.scheduler = scheduler.New(scheduler.Options{
		MaxTasks:    int(cfg.Scheduler.MaxTasks),
		Logger:      logger,
		Metrics:     app.metrics,
		EventBus:    app.bus,
		DispatchLog: dispatchLogger,
	})

	app.registry = registry.New()

	app.stats = stats.NewCollector()
	app.stats.Register(app.scheduler)

	app.housekeeping = schedule.NewScheduler()
	err = app.housekeeping.AddTask(&schedule.Task{
		Name:         "stats-report",
		InitialDelay: statsReportInterval,
		Interval:     statsReportInterval,
		Do: func() {
			app.log.Debugf("stats: %v", app.stats.Collect())
		},
	})
	if err != nil {
		return err
	}

	if app.metrics.Enabled {
		err = app.housekeeping.AddTask(&schedule.Task{
			Name:         "channel-pending",
			InitialDelay: app.metrics.Interval,
			Interval:     app.metrics.Interval,
			Do: func() {
				app.metrics.ChannelPendingGauge.Set(float64(app.pendingMessages()))
			},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// pendingMessages sums the unconsumed values across all channels shared
// through the registry.
func (app *Application) pendingMessages() int {
	total := 0
	app.registry.Range(func(_ string, value any) bool {
		if c, ok := value.(interface{ Len() int }); ok {
			total += c.Len()
		}
		return true
	})
	return total
}

func registerEventHandler(app *Application) {
	app.bus.Subscribe(eventbus.EventTaskPanic, func(data interface{}) {
		panicData := data.(*eventbus.TaskPanicData)
		name := panicData.TaskName
		if name == "" {
			name = panicData.TaskID
		}
		app.log.Warnf("task %q panicked during pass %d: %s", name, panicData.Pass, panicData.Value)
	})
}

func (app *Application) NodeID() string {
	return app.nodeID
}

func (app *Application) Config() *config.Config {
	return app.cfg
}

func (app *Application) Scheduler() *scheduler.Scheduler {
	return app.scheduler
}

func (app *Application) Registry() *registry.Registry {
	return app.registry
}

func (app *Application) EventBus() *eventbus.EventBus {
	return app.bus
}

func (app *Application) Executor() *pool.Pool {
	return app.executor
}

func (app *Application) Metrics() *metrics.Metrics {
	return app.metrics
}

func (app *Application) Stats() stats.Stats {
	return app.stats.Collect()
}

// run drives dispatch passes at the configured tick interval.
func (app *Application) run() {
	interval := time.Duration(app.cfg.Engine.TickInterval) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-app.signal:
			app.log.Info("run loop received stop signal")
			return
		case <-ticker.C:
			if err := app.scheduler.Run(); err != nil {
				app.log.Errorf("failed to run dispatch pass: %v", err)
			}
		}
	}
}

// Start starts application
func (app *Application) Start() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if app.started {
		return ErrApplicationStarted
	}

	app.log.Infof("starting EmbeddedEngine %s", embeddedengine.VERSION)

	now := time.Now()
	app.stats.Register(stats.ProviderFunc(func() map[string]interface{} {
		return map[string]interface{}{
			"started_at": now,
		}
	}))

	app.housekeeping.Start()
	safe.Go(app.run)

	app.started = true

	return nil
}

func (app *Application) Wait() {
	<-app.stop
}

// Stop stops application
func (app *Application) Stop() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if !app.started {
		return ErrApplicationStopped
	}

	app.log.Info("exiting")

	defer func() {
		app.log.Info("exit")
		_ = app.log.Sync()
	}()

	app.signal <- struct{}{}
	app.housekeeping.Stop()
	app.executor.Shutdown()
	if app.metrics != nil {
		_ = app.metrics.Stop()
	}

	app.started = false
	app.stop <- struct{}{}

	return nil
}
