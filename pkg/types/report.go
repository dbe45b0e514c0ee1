package types

import "fmt"

// Operation identifies the filesystem operation a failure belongs to.
type Operation string

const (
	OpCopy   Operation = "copy"
	OpMkdir  Operation = "mkdir"
	OpDelete Operation = "delete"
	OpWalk   Operation = "walk"
)

// Failure is one non-fatal filesystem error encountered during a sync,
// tagged with the offending path and the operation that failed.
type Failure struct {
	Path string
	Op   Operation
	Err  error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.Path, f.Err)
}

// Report accumulates non-fatal errors from copy and delete operations.
// A sync run always completes; the report carries the diagnostic trail of
// every failure encountered along the way.
type Report struct {
	Failures []Failure
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Record appends a failure to the report.
func (r *Report) Record(op Operation, path string, err error) {
	r.Failures = append(r.Failures, Failure{Path: path, Op: op, Err: err})
}

// Merge appends every failure of other to r.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Failures = append(r.Failures, other.Failures...)
}

// Empty reports whether the run completed without any failure.
func (r *Report) Empty() bool {
	return len(r.Failures) == 0
}

// Len returns the number of recorded failures.
func (r *Report) Len() int {
	return len(r.Failures)
}
