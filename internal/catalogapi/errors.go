package catalogapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/muurk/catalogctl/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeAuth indicates the API rejected the caller (401/403)
	ErrTypeAuth
	// ErrTypeHTTP indicates any other non-2xx status
	ErrTypeHTTP
	// ErrTypeConflict indicates the API refused a change because other
	// records still depend on the product (409)
	ErrTypeConflict
	// ErrTypeNotFound indicates the store or product does not exist (404)
	ErrTypeNotFound
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the API address
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeAuth:
		return "Authorization Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeConflict:
		return "Conflict"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents a failed admin API call
type APIError struct {
	Type           ErrorType
	Message        string
	StatusCode     int
	Err            error
	NetworkSubtype NetworkErrorSubtype
	RequestID      string
	Retryable      bool
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a typed APIError
func ClassifyNetworkError(err error) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &APIError{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Retryable:      true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return &APIError{
				Type:           ErrTypeConnectionRefused,
				Message:        "API refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Retryable:      true,
			}
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return &APIError{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Retryable:      true,
			}
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return &APIError{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Retryable:      true,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyNetworkError(urlErr.Err)
	}

	return &APIError{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Retryable:      true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	classified := ClassifyNetworkError(err)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Retryable: true,
	}
}

// NewHTTPError maps a non-2xx status to a typed error. Only server errors
// are retryable.
func NewHTTPError(statusCode int, message string) *APIError {
	errType := ErrTypeHTTP
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ErrTypeAuth
	case http.StatusNotFound:
		errType = ErrTypeNotFound
	case http.StatusConflict:
		errType = ErrTypeConflict
	}
	return &APIError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *APIError {
	return &APIError{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNetworkError reports whether err is any network-level failure
func IsNetworkError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeNetwork ||
			apiErr.Type == ErrTypeTimeout ||
			apiErr.Type == ErrTypeConnectionRefused ||
			apiErr.Type == ErrTypeDNS
	}
	return false
}

// IsNotFound reports whether the store or product does not exist
func IsNotFound(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeNotFound
}

// IsConflict reports whether the API refused the change because of
// dependent records
func IsConflict(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeConflict
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Retryable
	}
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The admin API did not respond in time.",
			"Troubleshooting:",
			"  • Check that the admin server is running",
			"  • Try a longer --timeout",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"Nothing is accepting connections at the API address.",
			"Troubleshooting:",
			"  • Check the --api URL and port",
			"  • Run 'catalogctl scan' to find admin servers on the local network",
			"  • See " + urls.TroubleshootingGuide,
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the API hostname.",
			"Troubleshooting:",
			"  • Use an IP address instead of a hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeNetwork:
		return strings.Join([]string{
			"Network communication failed.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • See " + urls.TroubleshootingGuide,
		}, "\n")

	case ErrTypeAuth:
		return "The admin API rejected the request. Sign in to the store admin and try again."

	case ErrTypeNotFound:
		return "The store or product was not found. Check --store and the product id."

	case ErrTypeConflict:
		return "Other records still reference this product. Remove the orders using it first."

	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return fmt.Sprintf("The admin API failed (HTTP %d). Check the server logs.", apiErr.StatusCode)
		}
		return fmt.Sprintf("The admin API returned HTTP %d. Check the request parameters.", apiErr.StatusCode)

	case ErrTypeParse:
		return "The admin API returned a response catalogctl could not read. Check that --api points at the store admin."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "API not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "API refused connection - is the admin server running?"
	case ErrTypeDNS:
		return "Cannot resolve API hostname"
	case ErrTypeNetwork:
		switch apiErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "API unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable"
		default:
			return "Network error - check connection"
		}
	case ErrTypeAuth:
		return fmt.Sprintf("Not authorized (HTTP %d)", apiErr.StatusCode)
	case ErrTypeNotFound:
		return "Not found"
	case ErrTypeConflict:
		return "Product is still in use"
	case ErrTypeHTTP:
		return fmt.Sprintf("API error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse API response"
	default:
		return apiErr.Message
	}
}
