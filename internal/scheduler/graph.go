package scheduler

import "github.com/alexanderramin/kairos/internal/domain"

// graph is the arena-plus-index representation the design notes call for: a
// contiguous task array with integer indices, and dependency records resolved
// to those indices up front. This keeps the DAG cache-friendly and avoids
// pointer cycles in the ownership graph.
type graph struct {
	tasks        []domain.Task
	index        map[string]int
	predecessors [][]resolvedDep // per task index: deps where this task is the successor
	successors   [][]resolvedDep // per task index: deps where this task is the predecessor
}

type resolvedDep struct {
	otherIdx int
	dep      domain.Dependency
}

// buildGraph resolves dependencies to task indices, collapsing duplicate
// (predecessor, successor) pairs to the most recently asserted (type, lag)
// as the data model's invariant requires.
func buildGraph(tasks []domain.Task, deps []domain.Dependency) (*graph, error) {
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
	}

	type key struct{ pred, succ string }
	dedup := make(map[key]domain.Dependency, len(deps))
	order := make([]key, 0, len(deps))
	for _, d := range deps {
		k := key{d.PredecessorID, d.SuccessorID}
		if _, exists := dedup[k]; !exists {
			order = append(order, k)
		}
		dedup[k] = d // last write wins
	}

	g := &graph{
		tasks:        tasks,
		index:        index,
		predecessors: make([][]resolvedDep, len(tasks)),
		successors:   make([][]resolvedDep, len(tasks)),
	}

	for _, k := range order {
		d := dedup[k]
		predIdx, ok := index[d.PredecessorID]
		if !ok {
			return nil, &UnresolvedPredecessorError{PredecessorID: d.PredecessorID, SuccessorID: d.SuccessorID}
		}
		succIdx, ok := index[d.SuccessorID]
		if !ok {
			return nil, &UnresolvedPredecessorError{PredecessorID: d.PredecessorID, SuccessorID: d.SuccessorID}
		}
		g.successors[predIdx] = append(g.successors[predIdx], resolvedDep{otherIdx: succIdx, dep: d})
		g.predecessors[succIdx] = append(g.predecessors[succIdx], resolvedDep{otherIdx: predIdx, dep: d})
	}

	return g, nil
}
