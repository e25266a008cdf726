// SPDX-License-Identifier: MPL-2.0

package runner

// WarningRecorder collects non-fatal warnings raised while a child process
// runs. Warnings never interrupt execution; they are surfaced to the user
// only when the run ends in a fatal error, and discarded otherwise.
type WarningRecorder struct {
	warnings []string
}

// NewWarningRecorder creates an empty WarningRecorder.
func NewWarningRecorder() *WarningRecorder {
	return &WarningRecorder{}
}

// Record appends a warning message. Empty messages are ignored.
func (w *WarningRecorder) Record(msg string) {
	if msg == "" {
		return
	}
	w.warnings = append(w.warnings, msg)
}

// Warnings returns the recorded warnings in record order.
func (w *WarningRecorder) Warnings() []string {
	out := make([]string, len(w.warnings))
	copy(out, w.warnings)
	return out
}

// Empty reports whether no warnings have been recorded.
func (w *WarningRecorder) Empty() bool { return len(w.warnings) == 0 }
