package core

// Logger is the logging seam used by the renderers and the web server.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Infof(template string, args ...interface{})
	Debugf(template string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Debugf(string, ...interface{}) {}
