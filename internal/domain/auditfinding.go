package domain

import "time"

// FindingSeverity ranks an AuditFinding's urgency.
type FindingSeverity string

const (
	FindingInfo     FindingSeverity = "info"
	FindingWarning  FindingSeverity = "warning"
	FindingCritical FindingSeverity = "critical"
)

// AuditFinding is one entry in a project's audit trail: an observation raised
// against a project or task (e.g. a constraint violation, a schedule risk
// flagged by a reviewer). Findings are appended in review order, which is why
// the sync layer replicates them as an ordered sequence rather than an
// unordered map.
type AuditFinding struct {
	ID        string
	ProjectID string
	TaskID    *string
	Severity  FindingSeverity
	Title     string
	Detail    string
	CreatedAt time.Time
	CreatedBy string
}
