// Package ir provides the foundational types for dagforge: pending
// operation records, IR snapshots, value-name conventions, and the
// canonical serialization used for content-addressed graph fingerprints.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import ir; ir imports nothing internal. This keeps ir
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Value names are case-sensitive and never normalized for identity
//   - Anonymous value names carry the reserved "__tmp" prefix
//   - Node names follow one documented policy: op_class + ":" + global
//     insertion index (counting operation records only)
//   - Canonical JSON (NFC strings, UTF-16 key order, no HTML escaping)
//     is the ONLY serialization used for fingerprint computation
package ir
