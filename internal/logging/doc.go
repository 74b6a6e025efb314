// Package logging provides structured logging for cogniload.
//
// It wraps Go's log/slog with a JSON handler so that store fallbacks,
// day rollovers and visit decisions can be inspected after the fact.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dataDir, "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithComponent("store").Warn("stored value could not be decoded", "key", "cogniload_tasks")
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"stored value could not be decoded","component":"store","key":"cogniload_tasks"}
//
// When the directory is empty the logger writes to stderr. Tests use
// [NopLogger] or [NewLoggerWithWriter].
package logging
