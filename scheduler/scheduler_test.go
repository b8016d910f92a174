package scheduler

import (
	"testing"

	"github.com/embeddedengine-io/embeddedengine/pkg/channel"
	"github.com/stretchr/testify/assert"
)

func TestDispatchOrder(t *testing.T) {
	s := New(Options{})

	var order []string
	assert.NoError(t, s.AddTaskFn(func() { order = append(order, "T1") }))
	assert.NoError(t, s.AddTaskFn(func() { order = append(order, "T2") }))

	assert.NoError(t, s.Run())
	assert.Equal(t, []string{"T1", "T2"}, order)
}

func TestRepeatedPasses(t *testing.T) {
	s := New(Options{})

	var order []int
	for i := 1; i <= 3; i++ {
		assert.NoError(t, s.AddTaskFn(func() { order = append(order, i) }))
	}

	for pass := 0; pass < 4; pass++ {
		assert.NoError(t, s.Run())
	}

	assert.Len(t, order, 12)
	for pass := 0; pass < 4; pass++ {
		assert.Equal(t, []int{1, 2, 3}, order[pass*3:pass*3+3])
	}
	assert.EqualValues(t, 4, s.Passes())
}

func TestAddTaskErrors(t *testing.T) {
	s := New(Options{MaxTasks: 2})

	assert.EqualError(t, s.AddTask(nil), "task is nil")
	assert.EqualError(t, s.AddTaskFn(nil), "fn is nil")

	assert.NoError(t, s.AddTaskFn(func() {}))
	assert.NoError(t, s.AddTaskFn(func() {}))
	assert.Equal(t, ErrTooManyTasks, s.AddTaskFn(func() {}))
	assert.Equal(t, 2, s.Size())
}

func TestMutationDuringPass(t *testing.T) {
	s := New(Options{})

	started := make(chan struct{})
	release := make(chan struct{})
	assert.NoError(t, s.AddTaskFn(func() {
		close(started)
		<-release
	}))

	done := make(chan error)
	go func() { done <- s.Run() }()

	<-started
	assert.Equal(t, ErrSchedulerRunning, s.AddTaskFn(func() {}))
	assert.Equal(t, ErrSchedulerRunning, s.Run())

	close(release)
	assert.NoError(t, <-done)

	// registration works again once the pass is over
	assert.NoError(t, s.AddTaskFn(func() {}))
}

func TestPanicIsolation(t *testing.T) {
	s := New(Options{})

	var order []string
	assert.NoError(t, s.AddNamedTask("first", TaskFunc(func() { order = append(order, "first") })))
	assert.NoError(t, s.AddNamedTask("faulty", TaskFunc(func() { panic("boom") })))
	assert.NoError(t, s.AddNamedTask("last", TaskFunc(func() { order = append(order, "last") })))

	assert.NoError(t, s.Run())
	assert.Equal(t, []string{"first", "last"}, order)

	stats := s.Stats()
	assert.EqualValues(t, 1, stats["scheduler.panics"])
	assert.EqualValues(t, 3, stats["scheduler.executions"])
}

func TestStats(t *testing.T) {
	s := New(Options{})
	assert.NoError(t, s.AddTaskFn(func() {}))
	assert.NoError(t, s.Run())
	assert.NoError(t, s.Run())

	stats := s.Stats()
	assert.Equal(t, 1, stats["scheduler.tasks"])
	assert.EqualValues(t, 2, stats["scheduler.passes"])
	assert.EqualValues(t, 2, stats["scheduler.executions"])
	assert.EqualValues(t, 0, stats["scheduler.panics"])
}

func TestProducerConsumer(t *testing.T) {
	s := New(Options{})
	c := channel.New[uint32](1)

	var received []uint32
	next := uint32(123)
	assert.NoError(t, s.AddNamedTask("producer", TaskFunc(func() {
		if err := c.Send(next); err == nil {
			next = 456
		}
	})))
	assert.NoError(t, s.AddNamedTask("consumer", TaskFunc(func() {
		if v, ok := c.Receive(); ok {
			received = append(received, v)
		}
	})))

	assert.NoError(t, s.Run())
	assert.NoError(t, s.Run())
	assert.Equal(t, []uint32{123, 456}, received)
}
