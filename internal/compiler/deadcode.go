package compiler

import (
	"fmt"
	"strings"

	"github.com/dagforge/dagforge/internal/ir"
)

// DeadCodeWarning describes an operation that finalization will drop.
//
// Dead code is a warning, not an error: builders routinely record
// intermediates that end up unused, and eliminating them silently is the
// optimizer's whole job. The analysis exists so `dagforge validate` can
// tell an author what will disappear and why before they rely on it.
type DeadCodeWarning struct {
	Node    string `json:"node"`    // node name of the doomed record
	OpClass string `json:"op"`      // operator class
	Message string `json:"message"` // human-readable reason
	Level   string `json:"level"`   // always "warning"
}

// AnalyzeDeadCode reports every operation record the optimizer would
// eliminate, with a reason. A snapshot with no dead operations returns
// an empty list.
func AnalyzeDeadCode(snap ir.Snapshot) []DeadCodeWarning {
	live := liveRecords(snap)

	warnings := []DeadCodeWarning{}
	for _, r := range snap.Records {
		if r.IsPlaceholder() || live[r.Pos] {
			continue
		}
		warnings = append(warnings, DeadCodeWarning{
			Node:    r.Name,
			OpClass: r.OpClass,
			Message: deadReason(r, snap),
			Level:   "warning",
		})
	}
	return warnings
}

// deadReason distinguishes the two ways an operation dies: all of its
// outputs are anonymous and unconsumed, or its named outputs were all
// overwritten by later producers before anything read them.
func deadReason(r ir.OpRecord, snap ir.Snapshot) string {
	allAnon := true
	for _, out := range r.Outputs {
		if !ir.IsAnon(out) {
			allAnon = false
			break
		}
	}
	names := strings.Join(r.Outputs, ", ")
	if allAnon {
		return fmt.Sprintf("produces only anonymous values (%s) that nothing live consumes", names)
	}
	return fmt.Sprintf("every output of %s is shadowed by a later producer before any live consumer reads it", names)
}
