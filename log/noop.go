package log

// noopLogger discards everything. It is the default until SetLogger is
// called.
type noopLogger struct{}

// Noop returns a Logger that discards all output, useful for explicitly
// silencing this module in tests.
func Noop() Logger { return &noopLogger{} }

func (*noopLogger) Debug(string, ...Field) {}
func (*noopLogger) Info(string, ...Field)  {}
func (*noopLogger) Warn(string, ...Field)  {}
func (*noopLogger) Error(string, ...Field) {}
