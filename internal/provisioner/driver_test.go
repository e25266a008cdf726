// SPDX-License-Identifier: MPL-2.0

package provisioner

import (
	"errors"
	"testing"
)

func TestDriverForName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		driver  string
		wantErr bool
	}{
		{name: "empty defaults to delegated", driver: ""},
		{name: "default", driver: "default"},
		{name: "delegated", driver: "delegated"},
		{name: "unknown", driver: "vagrant", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := DriverForName(tt.driver)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DriverForName(%q) error = %v, wantErr %v", tt.driver, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDriver) {
					t.Errorf("error does not wrap ErrUnknownDriver: %v", err)
				}
				return
			}
			if d.Name() != "delegated" {
				t.Errorf("Name() = %q", d.Name())
			}
			if err := d.SanityChecks(nil); err != nil {
				t.Errorf("SanityChecks() = %v", err)
			}
		})
	}
}
