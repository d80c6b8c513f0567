package core

// Logger receives progress messages from long-running operations
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

// Printf does nothing
func (NopLogger) Printf(string, ...interface{}) {}
