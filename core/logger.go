package core

// Logger is implemented by every log sink of the application.
// args may hold an error, a *http.Request or a map[string]interface{} of extra fields.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
