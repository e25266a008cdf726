// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"fmt"
	"maps"
	"sort"
)

// MergeEnv merges the given environment layers into a new map.
// Later layers override earlier ones on key collision. Nil layers are
// skipped. The input maps are never mutated.
func MergeEnv(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		maps.Copy(merged, layer)
	}
	return merged
}

// EnvToSlice converts an environment map to a sorted "KEY=VALUE" slice
// suitable for exec.Cmd.Env. Sorting keeps invocations reproducible.
func EnvToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}
