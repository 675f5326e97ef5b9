package expected

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is matched by errors returned when the expected
// results file cannot be read.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError reports an expected results file that could not be read.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("expected: invalid configuration: cannot read expected results file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfiguration }

func (e *ConfigError) Unwrap() error { return e.Err }

// ReadExpectedResultsYAML reads and parses the expected results file at path.
// Read failures are reported as *ConfigError; parse failures are returned
// as wrapped YAML errors.
func ReadExpectedResultsYAML(path string) (Results, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseResults(path, data)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return data, nil
}

func parseResults(path string, data []byte) (Results, error) {
	results := Results{}
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("expected: parse %s: %w", path, err)
	}
	if results == nil {
		results = Results{}
	}
	return results, nil
}

// parseRaw decodes data into generic maps and slices with string keys, so
// the document can be handed to encoding/json.
func parseRaw(path string, data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("expected: parse %s: %w", path, err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	return stringKeys(doc), nil
}

// stringKeys rewrites every mapping key as a string, the same way the
// typed decode turns a numeric test id such as 123 into "123".
func stringKeys(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = stringKeys(e)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = stringKeys(e)
		}
		return m
	case []any:
		for i, e := range v {
			v[i] = stringKeys(e)
		}
		return v
	default:
		return v
	}
}
