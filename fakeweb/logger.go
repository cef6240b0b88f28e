package fakeweb

// Logger receives debug output from a Context. *log.Logger and the level loggers returned by
// ldlog.Loggers.ForLevel both satisfy it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }
