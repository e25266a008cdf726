// SPDX-License-Identifier: MPL-2.0

// Package runner executes child processes for rolebook. It owns the
// low-level invocation contract: argument vectors, merged environments,
// working directories, captured output, and exit-code extraction. The
// provisioner layer builds commands; this package runs them.
package runner
