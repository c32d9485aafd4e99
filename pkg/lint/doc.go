// Package lint provides the rule engine for SQL style checking.
//
// Rules are data-driven: each rule is a RuleDef whose Check function is a
// pure function over an immutable parsed file. Rules register themselves in
// a process-wide registry via init and are run by an Analyzer, which applies
// configuration (disabled rules, severity overrides, per-rule options),
// isolates rule panics, and normalizes output ordering.
package lint
