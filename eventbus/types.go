package eventbus

const (
	// EventTaskPanic is broadcast when a task body panics during a pass.
	EventTaskPanic = "task.panic"
	// EventPassCompleted is broadcast after every completed dispatch pass.
	EventPassCompleted = "pass.completed"
)

type Callback func(data interface{})

type TaskPanicData struct {
	Pass     uint64 `json:"pass"`
	TaskID   string `json:"task_id"`
	TaskName string `json:"task_name"`
	Value    string `json:"value"`
}

type PassCompletedData struct {
	Pass     uint64 `json:"pass"`
	Tasks    int    `json:"tasks"`
	Panics   int    `json:"panics"`
	Duration int64  `json:"duration"`
}
