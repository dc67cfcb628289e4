package logger

// NopLogger discards everything. Used in tests and tooling that does not
// care about log output.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Debug(module, message string, details map[string]interface{}) {}

func (NopLogger) Info(module, message string, details map[string]interface{}) {}

func (NopLogger) Warn(module, message string, details map[string]interface{}) {}

func (NopLogger) Error(module, message string, details map[string]interface{}) {}

func (NopLogger) Sync() error { return nil }
