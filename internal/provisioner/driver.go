// SPDX-License-Identifier: MPL-2.0

package provisioner

import (
	"errors"
	"fmt"

	"github.com/rolebook/rolebook/internal/runner"
)

var (
	// ErrUnknownDriver is the sentinel error wrapped by UnknownDriverError.
	ErrUnknownDriver = errors.New("unknown driver")
	// ErrSanityCheck is the sentinel error wrapped by SanityCheckError.
	ErrSanityCheck = errors.New("driver sanity checks failed")
)

type (
	// Driver is the pre-flight contract a scenario driver exposes to the
	// provisioner. Instance management lives outside this repository;
	// the provisioner only consumes the sanity-check call before running
	// a playbook. Drivers may record non-fatal observations on the
	// warning recorder instead of failing.
	Driver interface {
		Name() string
		SanityChecks(warns *runner.WarningRecorder) error
	}

	// UnknownDriverError is returned when a driver name from the scenario
	// configuration is not registered.
	UnknownDriverError struct {
		Value string
	}

	// SanityCheckError is returned when a driver's pre-flight checks
	// fail before a playbook run.
	SanityCheckError struct {
		Driver string
		Cause  error
	}

	// DelegatedDriver is the default driver: instance lifecycle is
	// delegated to the playbooks themselves, so there is nothing to
	// check before a run.
	DelegatedDriver struct{}
)

// Error implements the error interface.
func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown driver %q (known drivers: default, delegated)", e.Value)
}

// Unwrap returns ErrUnknownDriver so callers can use errors.Is.
func (e *UnknownDriverError) Unwrap() error { return ErrUnknownDriver }

// Error implements the error interface.
func (e *SanityCheckError) Error() string {
	return fmt.Sprintf("driver sanity checks failed (driver %s): %v", e.Driver, e.Cause)
}

// Unwrap returns ErrSanityCheck plus the cause so callers can match
// either with errors.Is.
func (e *SanityCheckError) Unwrap() []error {
	return []error{ErrSanityCheck, e.Cause}
}

// Name returns the driver name.
func (d *DelegatedDriver) Name() string { return "delegated" }

// SanityChecks implements Driver. The delegated driver has no external
// environment to probe.
func (d *DelegatedDriver) SanityChecks(_ *runner.WarningRecorder) error { return nil }

// DriverForName resolves a scenario driver name to a Driver.
func DriverForName(name string) (Driver, error) {
	switch name {
	case "", "default", "delegated":
		return &DelegatedDriver{}, nil
	}
	return nil, &UnknownDriverError{Value: name}
}
