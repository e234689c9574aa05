package domain

// TaskStatus is the lifecycle state of one orchestrated fetch task.
type TaskStatus string

const (
	// TaskPending indicates the task has not been picked up by a worker.
	TaskPending TaskStatus = "Pending"
	// TaskRunning indicates the fetch call is in flight.
	TaskRunning TaskStatus = "Running"
	// TaskSuccess indicates the fetch returned a result.
	TaskSuccess TaskStatus = "Success"
	// TaskFallbackUsed indicates a transient failure was replaced by a fallback value.
	TaskFallbackUsed TaskStatus = "FallbackUsed"
	// TaskSkipped indicates the task never produced a result for its slot.
	TaskSkipped TaskStatus = "Skipped"
)

// Filled reports whether the status leaves a result in the task's slot.
func (s TaskStatus) Filled() bool {
	return s == TaskSuccess || s == TaskFallbackUsed
}

// RunStatus is the global state of an orchestrated batch.
type RunStatus string

const (
	// RunRunning indicates workers are still active.
	RunRunning RunStatus = "Running"
	// RunCompleted indicates every slot was filled by a result or a fallback.
	RunCompleted RunStatus = "Completed"
	// RunAborted indicates the run stopped early and some slots are empty.
	RunAborted RunStatus = "AbortedWithPartialResults"
)

// WorkerCounts are the pool sizes of the two pipeline phases.
type WorkerCounts struct {
	Discovery int `json:"discovery"`
	Research  int `json:"research"`
}
