package expected

import (
	"io"
	"log/slog"
	"slices"
	"sync"
)

// Provider answers expected-result queries from a YAML file. The file is
// read on first use and the parsed results are kept for later queries.
type Provider struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	results Results
}

// NewProvider returns a Provider for the file at path. A nil logger
// discards output.
func NewProvider(path string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{
		path:   path,
		logger: logger.With("component", "expected"),
	}
}

// Path returns the file the provider reads.
func (p *Provider) Path() string { return p.path }

// Load reads the results file unless it has already been loaded.
// Failed loads are not cached.
func (p *Provider) Load() (Results, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.results != nil {
		return p.results, nil
	}
	results, err := ReadExpectedResultsYAML(p.path)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("loaded expected results", "path", p.path, "tests", len(results))
	p.results = results
	return results, nil
}

// GetResult returns the expected result of testID for user. A user listed
// under both pass and fail is reported as Pass.
func (p *Provider) GetResult(testID, user string) (ExpectedResult, error) {
	results, err := p.Load()
	if err != nil {
		return ExpectedResult{}, err
	}
	rec, ok := results[testID]
	if !ok {
		p.logger.Debug("test not listed", "test", testID)
		return NewExpectedResult(Unlisted), nil
	}
	switch {
	case slices.Contains(rec.Pass, user):
		return NewExpectedResult(Pass), nil
	case slices.Contains(rec.Fail, user):
		return NewExpectedResult(Fail), nil
	default:
		p.logger.Debug("user not listed", "test", testID, "user", user)
		return NewExpectedResult(Unlisted), nil
	}
}
