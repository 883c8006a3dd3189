// Package catalogapi is an HTTP client for the store admin API.
//
// It persists products for the form controller and loads the reference
// lists (categories, sizes, colors) the form's pickers offer:
//
//	client := catalogapi.NewClient("http://localhost:3000", "store_1")
//	refs, err := client.LoadReferences(ctx)
//	product, err := client.GetProduct(ctx, "prod_1")
//
// Reads are retried with exponential backoff on retryable failures. Writes
// (POST, PATCH, DELETE) are sent exactly once. Every request carries an
// X-Request-ID header.
//
// Failures are returned as *APIError, classified by ErrorType, with
// GetShortErrorMessage and GetTroubleshootingHint for CLI output.
package catalogapi
