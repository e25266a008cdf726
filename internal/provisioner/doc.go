// SPDX-License-Identifier: MPL-2.0

// Package provisioner builds and executes ansible-playbook commands for a
// scenario. A Playbook merges the scenario's option layers into a single
// argument vector (baked once, reused on every execution), selects the
// provision or verify environment, and reports non-zero exits as a typed
// PlaybookError carrying the exit code and the shell-quoted command line.
package provisioner
