// Package logging provides structured logging for catalogctl.
//
// This package wraps a global zap logger with convenience functions. Logging
// is silent by default so CLI output and the interactive editor stay clean;
// set CATALOGCTL_LOG_LEVEL to enable it:
//
//	CATALOGCTL_LOG_LEVEL=debug CATALOGCTL_LOG_FILE=/tmp/catalogctl.log catalogctl edit prod_1
//
// # Specialized Logging
//
// Admin API traffic:
//
//	logging.LogRequest(requestID, "PATCH", url)
//	logging.LogResponse(requestID, 200, elapsed)
//
// Form effects (create, update, delete):
//
//	logging.LogEffect("update", "start", productID, nil)
//	logging.LogEffect("update", "failure", productID, err)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once Initialize has run.
package logging
