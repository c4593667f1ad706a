// Package migrations bundles the storefront schema. Files apply in name
// order; add a new numbered file rather than editing a shipped one.
package migrations

import "embed"

// FS holds every *.sql migration at its root.
//
//go:embed *.sql
var FS embed.FS
