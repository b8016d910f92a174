package scheduler

// Task is a runnable unit registered with the Scheduler. A task body runs
// to completion on every dispatch pass; it must return control voluntarily
// since nothing preempts it.
type Task interface {
	Execute()
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func()

func (f TaskFunc) Execute() {
	f()
}

type entry struct {
	id   string
	name string
	task Task
}
