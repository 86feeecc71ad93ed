package core

// Logger is any service that can log & report events.
// expected args: error, map[string]interface{}, User
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// User identifies the person a log entry relates to.
type User struct {
	ID       string
	Username string
	Email    string
}
