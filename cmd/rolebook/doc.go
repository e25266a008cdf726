// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for rolebook. This is the
// outermost boundary: typed errors from the layers below are rendered
// here and translated into the process exit code inside Execute.
package cmd
