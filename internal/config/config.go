package config

import "os"

const (
	DefaultProjectPath = "."
	DefaultLogLevel    = "info"
)

// ProjectPath returns the project directory from CONCEPDAG_PROJECT env var,
// falling back to DefaultProjectPath.
func ProjectPath() string {
	if env := os.Getenv("CONCEPDAG_PROJECT"); env != "" {
		return env
	}
	return DefaultProjectPath
}

// LogLevel returns the log level from CONCEPDAG_LOG_LEVEL env var,
// falling back to DefaultLogLevel.
func LogLevel() string {
	if env := os.Getenv("CONCEPDAG_LOG_LEVEL"); env != "" {
		return env
	}
	return DefaultLogLevel
}
