// Package phasegate computes per-phase lock state from a project's phase
// order and its tasks' completion status, per the sequential phase lock
// chain: a phase unlocks only once every task in the preceding phase is done.
package phasegate

import (
	"sort"

	"github.com/alexanderramin/kairos/internal/domain"
)

// Compute returns a PhaseLockInfo for every phase, in phase_order. It does
// not mutate phases or tasks.
func Compute(phases []domain.ProjectPhase, tasks []domain.Task) []domain.PhaseLockInfo {
	ordered := append([]domain.ProjectPhase(nil), phases...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].PhaseOrder < ordered[j].PhaseOrder })

	tasksByPhase := make(map[string][]domain.Task)
	for _, t := range tasks {
		if t.PhaseID == nil {
			continue
		}
		tasksByPhase[*t.PhaseID] = append(tasksByPhase[*t.PhaseID], t)
	}

	result := make([]domain.PhaseLockInfo, len(ordered))
	for i, phase := range ordered {
		if i == 0 {
			result[i] = domain.PhaseLockInfo{PhaseID: phase.ID, IsLocked: false, Reason: domain.ReasonFirstPhase}
			continue
		}

		prev := ordered[i-1]
		prevTasks := tasksByPhase[prev.ID]
		if allDone(prevTasks) {
			result[i] = domain.PhaseLockInfo{PhaseID: phase.ID, IsLocked: false, Reason: domain.ReasonPreviousPhaseComplete}
			continue
		}

		prevID, prevName := prev.ID, prev.Name
		result[i] = domain.PhaseLockInfo{
			PhaseID:            phase.ID,
			IsLocked:           true,
			Reason:             domain.ReasonPreviousPhaseIncomplete,
			BlockedByPhaseID:   &prevID,
			BlockedByPhaseName: &prevName,
		}
	}
	return result
}

// Locked reports whether a single phase id is currently locked, looking it up
// from a freshly computed lock set. An unknown phase id is reported unlocked.
func Locked(phases []domain.ProjectPhase, tasks []domain.Task, phaseID string) bool {
	for _, info := range Compute(phases, tasks) {
		if info.PhaseID == phaseID {
			return info.IsLocked
		}
	}
	return false
}

func allDone(tasks []domain.Task) bool {
	if len(tasks) == 0 {
		return true
	}
	for _, t := range tasks {
		if t.Status != domain.TaskDone {
			return false
		}
	}
	return true
}
