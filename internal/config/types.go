package config

// Config is the top-level structure mapping to cinnamon.yaml.
type Config struct {
	ExpectedResults ExpectedResults `yaml:"expected_results"`
	Log             Log             `yaml:"log"`
}

// ExpectedResults locates the expected results file and sets how strictly
// it is validated.
type ExpectedResults struct {
	Path   string `yaml:"path"`   // relative paths resolve against the config file
	Strict bool   `yaml:"strict"` // users listed under both pass and fail are errors
}

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level"` // debug | info | warn | error
}
