package mover

import (
	"fmt"
	"io"
	"strings"
)

// Reporter renders the changed/added/deleted summary of a run. It never
// mutates state, so dry-run output is exactly what a real run would do.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Summary prints one comma-joined line per non-empty group.
func (r *Reporter) Summary(res *Result) {
	r.group("Changed  : ", res.Changed)
	r.group("Adding   : ", res.Added)
	r.group("Deleting : ", res.Deleted)
}

func (r *Reporter) group(label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(r.w, "%s%s\n", label, strings.Join(paths, ", "))
}
