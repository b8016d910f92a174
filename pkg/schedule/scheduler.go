package schedule

import (
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is a named background job run at a fixed interval. This is the
// housekeeping scheduler; it is unrelated to the cooperative dispatcher.
type Task struct {
	id cron.EntryID

	Name         string
	InitialDelay time.Duration
	Interval     time.Duration
	Do           func()
}

var (
	ErrTaskAdded = errors.New("task already added")
)

type IntervalSchedule struct {
	once         sync.Once
	InitialDelay time.Duration
	Interval     time.Duration
}

func (s *IntervalSchedule) Next(t time.Time) time.Time {
	interval := s.Interval
	s.once.Do(func() {
		interval = s.InitialDelay
	})
	return t.Add(interval)
}

type Scheduler struct {
	cron  *cron.Cron
	tasks map[string]*Task
	mux   sync.RWMutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		tasks: make(map[string]*Task),
	}
}

func (s *Scheduler) AddTask(task *Task) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, exists := s.tasks[task.Name]; exists {
		return ErrTaskAdded
	}

	schedule := &IntervalSchedule{
		InitialDelay: task.InitialDelay,
		Interval:     task.Interval,
	}
	entryID := s.cron.Schedule(schedule, cron.FuncJob(task.Do))

	task.id = entryID
	s.tasks[task.Name] = task
	return nil
}

func (s *Scheduler) GetTask(name string) *Task {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.tasks[name]
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
