package progress

import (
	"testing"
	"time"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

func intp(n int) *int                    { return &n }
func statusp(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestApply_NoChangeIsIdentity(t *testing.T) {
	original := domain.Task{ID: "t1", PercentComplete: 50, Status: domain.TaskInProgress}
	got := Apply(original, Change{}, today)
	assert.Equal(t, original, got)
}

func TestApply_PercentDriven_FirstTransitionSetsActualStart(t *testing.T) {
	original := domain.Task{ID: "t1"}
	got := Apply(original, Change{Percent: intp(10)}, today)
	assert.Equal(t, domain.TaskInProgress, got.Status)
	assert.NotNil(t, got.ActualStartDate)
	assert.Equal(t, today, *got.ActualStartDate)
}

func TestApply_PercentDriven_ActualStartNeverCleared(t *testing.T) {
	earlier := today.AddDate(0, 0, -5)
	original := domain.Task{ID: "t1", PercentComplete: 40, Status: domain.TaskInProgress, ActualStartDate: &earlier}
	got := Apply(original, Change{Percent: intp(0)}, today)
	assert.Equal(t, domain.TaskPending, got.Status)
	assert.NotNil(t, got.ActualStartDate)
	assert.Equal(t, earlier, *got.ActualStartDate)
}

func TestApply_PercentDriven_HundredSetsFinish(t *testing.T) {
	original := domain.Task{ID: "t1", PercentComplete: 90}
	got := Apply(original, Change{Percent: intp(100)}, today)
	assert.Equal(t, domain.TaskDone, got.Status)
	assert.Equal(t, &today, got.ActualFinishDate)
}

func TestApply_PercentDriven_DropBelowHundredClearsFinish(t *testing.T) {
	finish := today.AddDate(0, 0, -1)
	original := domain.Task{ID: "t1", PercentComplete: 100, Status: domain.TaskDone, ActualFinishDate: &finish}
	got := Apply(original, Change{Percent: intp(80)}, today)
	assert.Equal(t, domain.TaskInProgress, got.Status)
	assert.Nil(t, got.ActualFinishDate)
}

func TestApply_PercentDriven_Clamped(t *testing.T) {
	original := domain.Task{ID: "t1"}
	got := Apply(original, Change{Percent: intp(150)}, today)
	assert.Equal(t, 100, got.PercentComplete)
	got = Apply(original, Change{Percent: intp(-10)}, today)
	assert.Equal(t, 0, got.PercentComplete)
}

func TestApply_StatusDriven_Done(t *testing.T) {
	original := domain.Task{ID: "t1", PercentComplete: 30}
	got := Apply(original, Change{Status: statusp(domain.TaskDone)}, today)
	assert.Equal(t, 100, got.PercentComplete)
	assert.Equal(t, &today, got.ActualFinishDate)
	assert.Equal(t, &today, got.ActualStartDate)
}

func TestApply_StatusDriven_DonePreservesExistingActualStart(t *testing.T) {
	earlier := today.AddDate(0, 0, -3)
	original := domain.Task{ID: "t1", ActualStartDate: &earlier}
	got := Apply(original, Change{Status: statusp(domain.TaskDone)}, today)
	assert.Equal(t, &earlier, got.ActualStartDate)
}

func TestApply_StatusDriven_Pending(t *testing.T) {
	earlier := today.AddDate(0, 0, -3)
	original := domain.Task{ID: "t1", PercentComplete: 100, Status: domain.TaskDone, ActualStartDate: &earlier}
	got := Apply(original, Change{Status: statusp(domain.TaskPending)}, today)
	assert.Equal(t, 0, got.PercentComplete)
	assert.Nil(t, got.ActualFinishDate)
	assert.Equal(t, &earlier, got.ActualStartDate)
}

func TestApply_StatusDriven_InProgressFloorsPercentAtOne(t *testing.T) {
	original := domain.Task{ID: "t1", PercentComplete: 0}
	got := Apply(original, Change{Status: statusp(domain.TaskInProgress)}, today)
	assert.Equal(t, 1, got.PercentComplete)
}

func TestApply_StatusDriven_InProgressKeepsHigherPercent(t *testing.T) {
	original := domain.Task{ID: "t1", PercentComplete: 65}
	got := Apply(original, Change{Status: statusp(domain.TaskInProgress)}, today)
	assert.Equal(t, 65, got.PercentComplete)
}
