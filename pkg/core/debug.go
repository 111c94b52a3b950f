package core

// StrictMode controls the expensive invariant checks: build-scope dirty
// marking legality, duplicate global-key reporting at finalize, and
// steal/graft bookkeeping. The test suite keeps it enabled; production
// embedders may turn it off once a tree is trusted.
var StrictMode = true

// SetStrictMode enables or disables strict invariant checking.
func SetStrictMode(strict bool) {
	StrictMode = strict
}
