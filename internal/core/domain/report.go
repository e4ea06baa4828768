package domain

import "sort"

type FailureReason string

const (
	ReasonInUse        FailureReason = "still in use"
	ReasonUnauthorized FailureReason = "not authorized"
	ReasonError        FailureReason = "provider error"
)

type Failure struct {
	ID       string        `json:"id"`
	Reason   FailureReason `json:"reason"`
	Guidance string        `json:"guidance,omitempty"`
}

// Report accumulates teardown outcomes per resource kind. It is not safe for
// concurrent use; the sequencer runs phases one at a time.
type Report struct {
	ScopeID      string                      `json:"scope_id"`
	DryRun       bool                        `json:"dry_run"`
	ScopeDeleted bool                        `json:"scope_deleted"`
	Deleted      map[ResourceKind][]string   `json:"deleted"`
	Failures     map[ResourceKind][]Failure  `json:"failures"`
}

func NewReport(scopeID string, dryRun bool) *Report {
	return &Report{
		ScopeID:  scopeID,
		DryRun:   dryRun,
		Deleted:  make(map[ResourceKind][]string),
		Failures: make(map[ResourceKind][]Failure),
	}
}

// RecordDeleted notes a successful deletion, or a planned one in dry-run
// mode. Resources already gone at describe time are never recorded.
func (r *Report) RecordDeleted(kind ResourceKind, id string) {
	r.Deleted[kind] = append(r.Deleted[kind], id)
}

func (r *Report) RecordFailure(kind ResourceKind, id string, reason FailureReason, guidance string) {
	r.Failures[kind] = append(r.Failures[kind], Failure{ID: id, Reason: reason, Guidance: guidance})
}

func (r *Report) DeletedCount() int {
	n := 0
	for _, ids := range r.Deleted {
		n += len(ids)
	}
	return n
}

func (r *Report) FailureCount() int {
	n := 0
	for _, fs := range r.Failures {
		n += len(fs)
	}
	return n
}

// Succeeded reports whether the teardown completed with the scope removed
// (or planned for removal) and no recorded failures.
func (r *Report) Succeeded() bool {
	return r.ScopeDeleted && r.FailureCount() == 0
}

// DeletedKinds returns the kinds with at least one deletion, sorted by name
// so summaries render deterministically.
func (r *Report) DeletedKinds() []ResourceKind {
	kinds := make([]ResourceKind, 0, len(r.Deleted))
	for k := range r.Deleted {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *Report) FailureKinds() []ResourceKind {
	kinds := make([]ResourceKind, 0, len(r.Failures))
	for k := range r.Failures {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
