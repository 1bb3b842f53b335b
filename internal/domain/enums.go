package domain

// TaskType distinguishes ordinary work from zero-duration milestones.
type TaskType string

const (
	TaskTypeTask      TaskType = "task"
	TaskTypeMilestone TaskType = "milestone"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// SchedulingMode selects whether the forward pass derives a task's dates from
// its dependencies (auto) or takes the user-pinned start/end verbatim (manual).
type SchedulingMode string

const (
	SchedulingAuto   SchedulingMode = "auto"
	SchedulingManual SchedulingMode = "manual"
)

// ConstraintType is an MS-Project-style date pin, weaker than dependency logic
// except for FNLT, which never moves a task but is reported as a violation.
type ConstraintType string

const (
	ConstraintNone ConstraintType = "none"
	ConstraintMSO  ConstraintType = "MSO"  // must start on
	ConstraintSNET ConstraintType = "SNET" // start no earlier than
	ConstraintFNLT ConstraintType = "FNLT" // finish no later than
)

// DependencyType is one of the four CPM dependency kinds.
type DependencyType string

const (
	DependencyFS DependencyType = "FS" // finish-to-start
	DependencySS DependencyType = "SS" // start-to-start
	DependencyFF DependencyType = "FF" // finish-to-finish
	DependencySF DependencyType = "SF" // start-to-finish
)

type PhaseStatus string

const (
	PhasePending   PhaseStatus = "pending"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
)

type PhaseLockReason string

const (
	ReasonFirstPhase              PhaseLockReason = "first_phase"
	ReasonPreviousPhaseComplete   PhaseLockReason = "previous_phase_complete"
	ReasonPreviousPhaseIncomplete PhaseLockReason = "previous_phase_incomplete"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContractor EmploymentType = "contractor"
)

type TimeOffType string

const (
	TimeOffVacation TimeOffType = "vacation"
	TimeOffSick     TimeOffType = "sick"
	TimeOffPersonal TimeOffType = "personal"
	TimeOffOther    TimeOffType = "other"
)

type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

type CalendarExceptionType string

const (
	ExceptionHoliday    CalendarExceptionType = "holiday"
	ExceptionNonWorking CalendarExceptionType = "non_working"
)
