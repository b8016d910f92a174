package scheduler

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/embeddedengine-io/embeddedengine/eventbus"
	"github.com/embeddedengine-io/embeddedengine/pkg/dispatchlog"
	"github.com/embeddedengine-io/embeddedengine/pkg/metrics"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const DefaultMaxTasks = 1024

var (
	ErrTooManyTasks     = errors.New("too many tasks")
	ErrSchedulerRunning = errors.New("scheduler is running")
)

type Options struct {
	MaxTasks    int
	Logger      *zap.SugaredLogger
	Metrics     *metrics.Metrics
	EventBus    *eventbus.EventBus
	DispatchLog dispatchlog.Logger
}

// Scheduler holds an ordered collection of tasks and executes them
// cooperatively: one synchronous, in-order invocation of every task body
// per call to Run. Tasks are registered up front; registration while a
// pass is in progress is rejected.
type Scheduler struct {
	mux     sync.Mutex
	tasks   []*entry
	running bool

	maxTasks int

	passes     atomic.Uint64
	executions atomic.Uint64
	panics     atomic.Uint64

	log         *zap.SugaredLogger
	metrics     *metrics.Metrics
	bus         *eventbus.EventBus
	dispatchLog dispatchlog.Logger
}

func New(opts Options) *Scheduler {
	log := opts.Logger
	if log == nil {
		log = zap.S()
	}
	maxTasks := opts.MaxTasks
	if maxTasks <= 0 {
		maxTasks = DefaultMaxTasks
	}
	return &Scheduler{
		maxTasks:    maxTasks,
		log:         log.Named("scheduler"),
		metrics:     opts.Metrics,
		bus:         opts.EventBus,
		dispatchLog: opts.DispatchLog,
	}
}

// AddTask appends task to the dispatch order.
func (s *Scheduler) AddTask(task Task) error {
	return s.AddNamedTask("", task)
}

// AddTaskFn appends fn to the dispatch order.
func (s *Scheduler) AddTaskFn(fn func()) error {
	if fn == nil {
		return errors.New("fn is nil")
	}
	return s.AddNamedTask("", TaskFunc(fn))
}

// AddNamedTask appends task to the dispatch order under a display name
// used by the dispatch log and panic reports.
func (s *Scheduler) AddNamedTask(name string, task Task) error {
	if task == nil {
		return errors.New("task is nil")
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.running {
		return ErrSchedulerRunning
	}
	if len(s.tasks) >= s.maxTasks {
		return ErrTooManyTasks
	}

	s.tasks = append(s.tasks, &entry{
		id:   uuid.NewV4().String(),
		name: name,
		task: task,
	})
	return nil
}

// Size returns the number of registered tasks.
func (s *Scheduler) Size() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.tasks)
}

// Passes returns the number of completed dispatch passes.
func (s *Scheduler) Passes() uint64 {
	return s.passes.Load()
}

// Run executes one dispatch pass: every registered task exactly once, in
// registration order, in the calling goroutine. A panicking task is
// recovered and the pass continues with the remaining tasks. Run returns
// ErrSchedulerRunning when a pass is already in progress.
func (s *Scheduler) Run() error {
	s.mux.Lock()
	if s.running {
		s.mux.Unlock()
		return ErrSchedulerRunning
	}
	s.running = true
	tasks := s.tasks
	s.mux.Unlock()

	defer func() {
		s.mux.Lock()
		s.running = false
		s.mux.Unlock()
	}()

	pass := s.passes.Add(1)
	start := time.Now()

	panics := 0
	for _, e := range tasks {
		if s.dispatch(pass, e) {
			panics++
		}
	}

	if s.metrics != nil && s.metrics.Enabled {
		s.metrics.PassTotalCounter.Add(1)
		s.metrics.TaskRegisteredGauge.Set(float64(len(tasks)))
	}
	if s.bus != nil {
		s.bus.Broadcast(eventbus.EventPassCompleted, &eventbus.PassCompletedData{
			Pass:     pass,
			Tasks:    len(tasks),
			Panics:   panics,
			Duration: time.Since(start).Microseconds(),
		})
	}

	return nil
}

// dispatch invokes a single task body, isolating panics. It reports
// whether the task panicked.
func (s *Scheduler) dispatch(pass uint64, e *entry) (panicked bool) {
	var panicValue string
	start := time.Now()

	func() {
		defer func() {
			if v := recover(); v != nil {
				panicked = true
				panicValue = fmt.Sprintf("%v", v)

				buf := make([]byte, 2048)
				n := runtime.Stack(buf, false)
				buf = buf[:n]
				s.log.Errorf("task panic recovered: id=%s name=%s: %v\n %s", e.id, e.name, v, buf)
			}
		}()
		e.task.Execute()
	}()

	latency := time.Since(start)
	s.executions.Add(1)

	if s.metrics != nil && s.metrics.Enabled {
		s.metrics.TaskTotalCounter.Add(1)
		s.metrics.TaskDurationHistogram.Observe(latency.Seconds())
		if panicked {
			s.metrics.TaskPanicCounter.Add(1)
		}
	}

	if s.dispatchLog != nil {
		logEntry := &dispatchlog.Entry{
			Pass:     pass,
			TaskID:   e.id,
			TaskName: e.name,
			Latency:  latency,
			Outcome:  dispatchlog.OutcomeOK,
		}
		if panicked {
			logEntry.Outcome = dispatchlog.OutcomePanic
			logEntry.Panic = panicValue
		}
		s.dispatchLog.Log(logEntry)
	}

	if panicked {
		s.panics.Add(1)
		if s.bus != nil {
			s.bus.Broadcast(eventbus.EventTaskPanic, &eventbus.TaskPanicData{
				Pass:     pass,
				TaskID:   e.id,
				TaskName: e.name,
				Value:    panicValue,
			})
		}
	}

	return panicked
}

// Stats implements the stats provider contract.
func (s *Scheduler) Stats() map[string]interface{} {
	return map[string]interface{}{
		"scheduler.tasks":      s.Size(),
		"scheduler.passes":     s.passes.Load(),
		"scheduler.executions": s.executions.Load(),
		"scheduler.panics":     s.panics.Load(),
	}
}
