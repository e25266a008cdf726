// SPDX-License-Identifier: MPL-2.0

// Package issue holds the catalog of user-facing failure modes and the
// ActionableError builder. Catalog entries carry markdown help text that
// the CLI renders with glamour when the corresponding failure occurs.
package issue
