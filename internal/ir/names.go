package ir

import (
	"fmt"
	"strings"
)

// AnonPrefix is the reserved prefix for auto-generated value names.
// User-declared names never carry it (the registry treats any name with
// this prefix as the anonymous sentinel: never registered, never
// conflicting), so generated names cannot collide with user names.
const AnonPrefix = "__tmp"

// OpClassPlaceholder is the op class of the trivial records that back
// placeholder declarations in the pending-operation log.
const OpClassPlaceholder = "placeholder"

// AnonName returns the nth auto-generated value name. Uniqueness within a
// program follows from the monotonic counter the program feeds in.
func AnonName(n int) string {
	return fmt.Sprintf("%s%d", AnonPrefix, n)
}

// IsAnon reports whether name is an auto-generated (anonymous) value
// name. Anonymous outputs are not liveness roots on their own.
func IsAnon(name string) bool {
	return strings.HasPrefix(name, AnonPrefix)
}

// NodeName derives the stable node identifier for an operation record.
//
// Policy (deliberate, applied everywhere): op_class + ":" + global
// insertion index, where the index counts operation records only —
// placeholder declarations do not consume indices. Given the same
// sequence of operation insertions the derived names are identical,
// which is what makes finalized graphs reproducible and lets tests
// assert exact node names.
func NodeName(opClass string, index int) string {
	return fmt.Sprintf("%s:%d", opClass, index)
}
