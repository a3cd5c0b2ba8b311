package core

// Logger is the logging service used across the app.
// args may hold errors, maps of extra fields and a user.User (the user the event happened for).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
