// Package config resolves the effective taskwright configuration from
// four ordered sources: compiled-in defaults, the user-wide file, the
// project-local file, and environment variables.
//
// Precedence is fixed as default < global < local < env. Layers combine
// by pure structural deep merge, every merged result is validated
// against the declarative schema before it becomes visible, and each
// effective value carries an attribution naming the layer it came from.
// Sensitive fields are masked on disk and in masked reads; in-memory
// values stay real.
//
// The Manager is built once at process entry and passed to consumers.
// It serializes access internally but provides no cross-process
// coordination; concurrent CLI invocations writing the same file must
// serialize externally.
package config
