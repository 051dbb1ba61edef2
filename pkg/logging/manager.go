package logging

import "sync"

// Each process owns exactly one service logger, installed at startup and
// shared by every package that calls GetServiceLogger.
var (
	serviceLogger Logger
	initOnce      sync.Once
)

// InitServiceLogger builds the process-wide logger. Only the first call has
// any effect.
func InitServiceLogger(config LoggerConfig) error {
	var err error
	initOnce.Do(func() {
		serviceLogger, err = NewZapLogger(config)
	})
	return err
}

// GetServiceLogger panics when called before InitServiceLogger, which is a
// startup ordering bug rather than a runtime condition.
func GetServiceLogger() Logger {
	if serviceLogger == nil {
		panic("logger not initialized")
	}
	return serviceLogger
}

// Shutdown flushes buffered entries. Sync errors on stdout are expected and
// dropped.
func Shutdown() {
	if zl, ok := serviceLogger.(*ZapLogger); ok && zl != nil {
		_ = zl.logger.Sync()
	}
}
