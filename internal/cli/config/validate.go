package config

import (
	"fmt"
	"strings"

	"github.com/pgstyle/pgstyle/pkg/lint"
)

var validDialects = []string{"postgres", "ansi"}
var validOutputs = []string{"auto", "text", "markdown", "json", "sarif"}

// optionEnums constrains the values of enumerated rule options.
var optionEnums = map[string]map[string][]string{
	"CP01": {"case": {"upper", "lower", "none"}},
	"CP03": {"case": {"upper", "lower", "none"}},
	"LT01": {"style": {"leading", "trailing"}},
	"CV01": {"operator": {"<>", "!="}},
}

// Validate rejects configurations that reference unknown rules, unknown
// rule options or out-of-range values. A typo in the config must fail the
// run, not silently check nothing.
func Validate(cfg *Config) error {
	if !contains(validDialects, cfg.Dialect) {
		return &Error{Field: "dialect", Msg: oneOf(cfg.Dialect, validDialects)}
	}
	if !contains(validOutputs, cfg.Output) {
		return &Error{Field: "output", Msg: oneOf(cfg.Output, validOutputs)}
	}

	if cfg.Lint == nil {
		return nil
	}

	for _, id := range cfg.Lint.Disabled {
		if _, ok := lint.Get(id); !ok {
			return &Error{Field: "lint.disabled", Msg: fmt.Sprintf("unknown rule %q", id)}
		}
	}

	for id, name := range cfg.Lint.Severity {
		if _, ok := lint.Get(id); !ok {
			return &Error{Field: "lint.severity", Msg: fmt.Sprintf("unknown rule %q", id)}
		}
		if _, ok := lint.ParseSeverity(name); !ok {
			return &Error{
				Field: "lint.severity." + id,
				Msg:   oneOf(name, []string{"error", "warning", "info", "hint"}),
			}
		}
	}

	for id, opts := range cfg.Lint.Rules {
		def, ok := lint.Get(id)
		if !ok {
			return &Error{Field: "lint.rules", Msg: fmt.Sprintf("unknown rule %q", id)}
		}
		for key, value := range opts {
			if !contains(def.ConfigKeys, key) {
				return &Error{
					Field: fmt.Sprintf("lint.rules.%s", id),
					Msg:   fmt.Sprintf("unknown option %q (accepts: %s)", key, strings.Join(def.ConfigKeys, ", ")),
				}
			}
			if allowed, ok := optionEnums[id][key]; ok {
				s, _ := value.(string)
				if !contains(allowed, s) {
					return &Error{
						Field: fmt.Sprintf("lint.rules.%s.%s", id, key),
						Msg:   oneOf(fmt.Sprintf("%v", value), allowed),
					}
				}
			}
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func oneOf(got string, allowed []string) string {
	return fmt.Sprintf("invalid value %q (must be one of: %s)", got, strings.Join(allowed, ", "))
}
