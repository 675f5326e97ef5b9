package expected

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Issue is a single problem found in an expected results file.
type Issue struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Rule     string `json:"rule,omitempty"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (i *Issue) Error() string {
	if i.Path == "" {
		return fmt.Sprintf("[%s] %s", i.Phase, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Phase, i.Path, i.Message)
}

// Domain rules reported by Check.
const (
	RuleEmptyTestID   = "empty-test-id"
	RuleEmptyUser     = "empty-user"
	RuleDuplicateUser = "duplicate-user"
	RuleOverlap       = "pass-fail-overlap"
)

// Check runs the domain rules over results. A user listed under both pass
// and fail is a warning; strict callers escalate it.
func Check(results Results) []*Issue {
	var issues []*Issue
	add := func(rule, path, severity, format string, args ...any) {
		issues = append(issues, &Issue{
			Phase:    "domain",
			Rule:     rule,
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: severity,
		})
	}

	for _, testID := range slices.Sorted(maps.Keys(results)) {
		rec := results[testID]
		if strings.TrimSpace(testID) == "" {
			add(RuleEmptyTestID, fmt.Sprintf("%q", testID), "error", "test id must not be empty")
		}
		checkUsers := func(list string, users []string) {
			seen := map[string]bool{}
			for i, u := range users {
				p := fmt.Sprintf("%s.%s[%d]", testID, list, i)
				if strings.TrimSpace(u) == "" {
					add(RuleEmptyUser, p, "error", "user must not be empty")
					continue
				}
				if seen[u] {
					add(RuleDuplicateUser, p, "warning", "duplicate user %q", u)
				}
				seen[u] = true
			}
		}
		checkUsers("pass", rec.Pass)
		checkUsers("fail", rec.Fail)

		for i, u := range rec.Fail {
			if u != "" && slices.Contains(rec.Pass, u) {
				add(RuleOverlap, fmt.Sprintf("%s.fail[%d]", testID, i), "warning",
					"user %q is listed under both pass and fail; pass takes precedence", u)
			}
		}
	}
	return issues
}

// Validate joins every error-severity issue Check reports. When strict is
// set, users listed under both pass and fail are errors too.
func Validate(results Results, strict bool) error {
	return joinIssues(escalate(Check(results), strict))
}

// ValidateFile performs structural, semantic and domain validation of the
// file at path. It returns the parsed results when the file could be loaded.
func ValidateFile(path string, strict bool) (Results, []*Issue) {
	structural := func(err error) []*Issue {
		return []*Issue{{Phase: "structural", Message: err.Error(), Severity: "error"}}
	}
	data, err := readFile(path)
	if err != nil {
		return nil, structural(err)
	}
	results, err := parseResults(path, data)
	if err != nil {
		return nil, structural(err)
	}

	var issues []*Issue
	doc, err := parseRaw(path, data)
	if err != nil {
		issues = append(issues, &Issue{Phase: "structural", Message: err.Error(), Severity: "error"})
	} else {
		issues = append(issues, validateSemantic(doc)...)
	}
	issues = append(issues, escalate(Check(results), strict)...)
	return results, issues
}

// Errors returns the error-severity issues joined, or nil.
func Errors(issues []*Issue) error { return joinIssues(issues) }

func joinIssues(issues []*Issue) error {
	var errs []error
	for _, i := range issues {
		if i.Severity == "error" {
			errs = append(errs, i)
		}
	}
	return errors.Join(errs...)
}

func escalate(issues []*Issue, strict bool) []*Issue {
	if !strict {
		return issues
	}
	for _, i := range issues {
		if i.Rule == RuleOverlap {
			i.Severity = "error"
		}
	}
	return issues
}

// validateSemantic validates the raw document against the generated schema.
func validateSemantic(doc any) []*Issue {
	fail := func(format string, args ...any) []*Issue {
		return []*Issue{{Phase: "semantic", Message: fmt.Sprintf(format, args...), Severity: "error"}}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fail("marshal for schema validation: %v", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fail("unmarshal document: %v", err)
	}

	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return fail("generate schema: %v", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return fail("unmarshal schema: %v", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource(schemaID, schemaDoc); err != nil {
		return fail("add schema resource: %v", err)
	}
	sch, err := c.Compile(schemaID)
	if err != nil {
		return fail("compile schema: %v", err)
	}

	if err := sch.Validate(instance); err != nil {
		var ve *sjsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fail("%v", err)
		}
		printer := message.NewPrinter(language.English)
		var issues []*Issue
		for _, cause := range flattenValidationErrors(ve) {
			issues = append(issues, &Issue{
				Phase:    "semantic",
				Path:     strings.Join(cause.InstanceLocation, "/"),
				Message:  cause.ErrorKind.LocalizedString(printer),
				Severity: "error",
			})
		}
		return issues
	}
	return nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
