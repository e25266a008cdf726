// SPDX-License-Identifier: MPL-2.0

// Package config defines the typed scenario configuration consumed by the
// provisioner: the current action, playbook paths, option and environment
// layers, the inventory directory, and the scenario working directory.
// Scenario files are CUE documents validated against an embedded schema
// before being decoded through viper into the Config struct.
package config
