package expected

import "fmt"

// Results maps a test identifier to the users expected to pass or fail it.
type Results map[string]Record

// Record lists the users expected to pass and to fail a single test.
type Record struct {
	Pass []string `yaml:"pass" json:"pass,omitempty" jsonschema:"description=Users expected to pass the test"`
	Fail []string `yaml:"fail" json:"fail,omitempty" jsonschema:"description=Users expected to fail the test"`
}

// ResultState is the expected outcome of a test for one user.
type ResultState int

const (
	Unlisted ResultState = iota
	Pass
	Fail
)

func (s ResultState) String() string {
	switch s {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Unlisted:
		return "unlisted"
	default:
		return fmt.Sprintf("ResultState(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ResultState) MarshalText() ([]byte, error) {
	switch s {
	case Pass, Fail, Unlisted:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("expected: invalid result state %d", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ResultState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pass":
		*s = Pass
	case "fail":
		*s = Fail
	case "unlisted":
		*s = Unlisted
	default:
		return fmt.Errorf("expected: unknown result state %q", string(b))
	}
	return nil
}

// ExpectedResult is the declared outcome for a test and user pair.
type ExpectedResult struct {
	state ResultState
}

// NewExpectedResult wraps state. Values outside the known states are
// treated as Unlisted.
func NewExpectedResult(state ResultState) ExpectedResult {
	switch state {
	case Pass, Fail:
		return ExpectedResult{state: state}
	default:
		return ExpectedResult{state: Unlisted}
	}
}

func (r ExpectedResult) State() ResultState { return r.state }

func (r ExpectedResult) IsExpectedPass() bool { return r.state == Pass }

func (r ExpectedResult) IsExpectedFail() bool { return r.state == Fail }

func (r ExpectedResult) IsUnlisted() bool { return r.state != Pass && r.state != Fail }

func (r ExpectedResult) String() string { return r.state.String() }
