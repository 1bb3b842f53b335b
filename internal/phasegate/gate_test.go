package phasegate

import (
	"testing"

	"github.com/alexanderramin/kairos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phase(id string, order int) domain.ProjectPhase {
	return domain.ProjectPhase{ID: id, ProjectID: "p1", Name: id, PhaseOrder: order}
}

func taskIn(phaseID string, status domain.TaskStatus) domain.Task {
	id := phaseID
	return domain.Task{ID: "t-" + phaseID, PhaseID: &id, Status: status}
}

func TestCompute_FirstPhaseAlwaysUnlocked(t *testing.T) {
	phases := []domain.ProjectPhase{phase("p2", 2), phase("p1", 1)}
	result := Compute(phases, nil)
	require.Len(t, result, 2)
	assert.Equal(t, "p1", result[0].PhaseID)
	assert.False(t, result[0].IsLocked)
	assert.Equal(t, domain.ReasonFirstPhase, result[0].Reason)
}

func TestCompute_EmptyPreviousPhaseUnlocksNext(t *testing.T) {
	phases := []domain.ProjectPhase{phase("p1", 1), phase("p2", 2)}
	result := Compute(phases, nil)
	assert.False(t, result[1].IsLocked)
	assert.Equal(t, domain.ReasonPreviousPhaseComplete, result[1].Reason)
}

func TestCompute_IncompletePreviousPhaseLocksNext(t *testing.T) {
	phases := []domain.ProjectPhase{phase("p1", 1), phase("p2", 2)}
	tasks := []domain.Task{taskIn("p1", domain.TaskInProgress)}
	result := Compute(phases, tasks)
	require.True(t, result[1].IsLocked)
	assert.Equal(t, domain.ReasonPreviousPhaseIncomplete, result[1].Reason)
	require.NotNil(t, result[1].BlockedByPhaseID)
	assert.Equal(t, "p1", *result[1].BlockedByPhaseID)
}

func TestCompute_AllDonePreviousPhaseUnlocksNext(t *testing.T) {
	phases := []domain.ProjectPhase{phase("p1", 1), phase("p2", 2)}
	tasks := []domain.Task{taskIn("p1", domain.TaskDone), taskIn("p1", domain.TaskDone)}
	result := Compute(phases, tasks)
	assert.False(t, result[1].IsLocked)
}

func TestLocked_UnknownPhaseIsUnlocked(t *testing.T) {
	phases := []domain.ProjectPhase{phase("p1", 1)}
	assert.False(t, Locked(phases, nil, "ghost"))
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	phases := []domain.ProjectPhase{phase("p2", 2), phase("p1", 1)}
	original := append([]domain.ProjectPhase(nil), phases...)
	Compute(phases, nil)
	assert.Equal(t, original, phases)
}
