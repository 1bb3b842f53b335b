package domain

import "time"

// SchedulingResult is the output contract of the CPM scheduler: the input
// tasks annotated with computed ES/EF/LS/LF/slack/is_critical, the ordered
// critical path, and the project's computed end date.
type SchedulingResult struct {
	Tasks          []Task
	CriticalPath   []string // task ids, in topological order
	ProjectEndDate *time.Time
}
