// SPDX-License-Identifier: MPL-2.0

package provisioner

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
)

// verbosityLevels are the option keys recognized as verbosity requests,
// checked in order. The first truthy key wins and is removed from the
// option map; the rest pass through untouched.
var verbosityLevels = []string{"v", "vv", "vvv"}

// truthy reports whether an option value carries information.
// Falsy values: nil, false, the empty string, zero, and empty slices.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// mergeOptions merges the scenario option map with local overrides.
// Local overrides win on key collision. Neither input is mutated.
func mergeOptions(base, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overrides))
	maps.Copy(merged, base)
	maps.Copy(merged, overrides)
	return merged
}

// popVerbosity derives the verbosity flag from the merged options.
// It returns the flag tokens (for example ["-vvv"]) and a copy of the
// options with the matched verbosity key removed.
func popVerbosity(options map[string]any) ([]string, map[string]any) {
	rest := make(map[string]any, len(options))
	maps.Copy(rest, options)

	for _, level := range verbosityLevels {
		if truthy(rest[level]) {
			delete(rest, level)
			return []string{"-" + level}, rest
		}
	}
	return nil, rest
}

// flattenOptions converts an option map to CLI tokens in sorted key order
// so baked commands are reproducible. Underscores in key names become
// dashes, single-character keys take one dash, booleans become bare flags
// (false is omitted entirely), slices expand to one token per element.
func flattenOptions(options map[string]any) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tokens []string
	for _, key := range keys {
		tokens = append(tokens, optionTokens(key, options[key])...)
	}
	return tokens
}

func optionTokens(key string, value any) []string {
	flag := flagName(key)

	switch v := value.(type) {
	case bool:
		if v {
			return []string{flag}
		}
		return nil
	case string:
		return []string{flag + "=" + v}
	case int:
		return []string{flag + "=" + strconv.Itoa(v)}
	case int64:
		return []string{flag + "=" + strconv.FormatInt(v, 10)}
	case []string:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			tokens = append(tokens, flag+"="+item)
		}
		return tokens
	case []any:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			tokens = append(tokens, flag+"="+fmt.Sprintf("%v", item))
		}
		return tokens
	case nil:
		return nil
	default:
		return []string{flag + "=" + fmt.Sprintf("%v", v)}
	}
}

func flagName(key string) string {
	name := strings.ReplaceAll(key, "_", "-")
	if len(key) == 1 {
		return "-" + name
	}
	return "--" + name
}
