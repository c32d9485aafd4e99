package lint

import (
	"github.com/pgstyle/pgstyle/pkg/parser"
	"github.com/pgstyle/pgstyle/pkg/token"
)

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string    // Unique identifier, e.g. "CP01"
	Name        string    // Human-readable name, e.g. "capitalisation.keywords"
	Group       string    // Category, e.g. "capitalisation", "layout"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	AutoFixable bool      // true if the rule's diagnostics carry applicable fixes
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts
	Dialects    []string  // Restrict to specific dialects; nil/empty means all dialects

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc analyzes a parsed file and returns diagnostics.
// The opts parameter contains rule-specific options from configuration.
type CheckFunc func(file *parser.File, opts map[string]any) []Diagnostic

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Pos      token.Position
	EndPos   token.Position // Optional: end of the problematic range

	Fixes       []Fix // Optional: suggested fixes
	AutoFixable bool  // true if Fixes can be auto-applied
}

// Fix represents a suggested code fix.
type Fix struct {
	Description string
	TextEdits   []TextEdit
}

// TextEdit represents a text replacement. Pos and EndPos address the span
// to replace by byte offset; an empty span inserts, an empty NewText deletes.
type TextEdit struct {
	Pos     token.Position
	EndPos  token.Position
	NewText string
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	AutoFixable     bool     `json:"auto_fixable"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	Dialects        []string `json:"dialects,omitempty"`

	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a RuleDef for documentation/tooling.
func GetRuleInfo(def RuleDef) RuleInfo {
	return RuleInfo{
		ID:              def.ID,
		Name:            def.Name,
		Group:           def.Group,
		Description:     def.Description,
		DefaultSeverity: def.Severity,
		AutoFixable:     def.AutoFixable,
		ConfigKeys:      def.ConfigKeys,
		Dialects:        def.Dialects,
		Rationale:       def.Rationale,
		BadExample:      def.BadExample,
		GoodExample:     def.GoodExample,
		Fix:             def.Fix,
	}
}
