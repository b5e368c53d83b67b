package logging

// MockLogger captures log entries for verification in tests.
type MockLogger struct {
	entries       *[]LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry is a single entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger creates an empty MockLogger. Derived loggers obtained via
// WithError/WithField/WithFields append to the same entry list.
func NewMockLogger() *MockLogger {
	return &MockLogger{entries: &[]LogEntry{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.pendingFields...), fields...)
	*m.entries = append(*m.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{entries: m.entries, pendingError: err, pendingFields: m.pendingFields}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	all := append(append([]Field{}, m.pendingFields...), fields...)
	return &MockLogger{entries: m.entries, pendingError: m.pendingError, pendingFields: all}
}

// Entries returns all captured log entries.
func (m *MockLogger) Entries() []LogEntry {
	return *m.entries
}

// EntriesByLevel returns the captured entries of one level.
func (m *MockLogger) EntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range *m.entries {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// HasEntry checks whether an entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range *m.entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}
