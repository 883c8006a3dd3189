package catalogapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{
			name:      "timeout",
			err:       &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}}},
			wantType:  ErrTypeTimeout,
			retryable: true,
		},
		{
			name:      "refused",
			err:       &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}},
			wantType:  ErrTypeConnectionRefused,
			retryable: true,
		},
		{
			name:     "dns",
			err:      &url.Error{Op: "Get", URL: "http://x", Err: &net.DNSError{Name: "admin.local", Err: "no such host"}},
			wantType: ErrTypeDNS,
		},
		{
			name:      "generic",
			err:       errors.New("broken pipe"),
			wantType:  ErrTypeNetwork,
			retryable: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.retryable)
			}
		})
	}

	if ClassifyNetworkError(nil) != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestNewHTTPError(t *testing.T) {
	tests := []struct {
		status    int
		wantType  ErrorType
		retryable bool
	}{
		{http.StatusBadRequest, ErrTypeHTTP, false},
		{http.StatusUnauthorized, ErrTypeAuth, false},
		{http.StatusForbidden, ErrTypeAuth, false},
		{http.StatusNotFound, ErrTypeNotFound, false},
		{http.StatusConflict, ErrTypeConflict, false},
		{http.StatusInternalServerError, ErrTypeHTTP, true},
		{http.StatusBadGateway, ErrTypeHTTP, true},
	}
	for _, tt := range tests {
		got := NewHTTPError(tt.status, "x")
		if got.Type != tt.wantType || got.Retryable != tt.retryable {
			t.Errorf("NewHTTPError(%d) = {%v, retryable=%v}, want {%v, %v}",
				tt.status, got.Type, got.Retryable, tt.wantType, tt.retryable)
		}
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := fmt.Errorf("wrapped: %w", NewNetworkError("failed", cause))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through APIError")
	}
	if !IsNetworkError(err) {
		t.Error("IsNetworkError should see through wrapping")
	}
}

func TestMessages(t *testing.T) {
	conflict := NewHTTPError(http.StatusConflict, "in use")
	if got := GetShortErrorMessage(conflict); got != "Product is still in use" {
		t.Errorf("GetShortErrorMessage() = %q", got)
	}
	if hint := GetTroubleshootingHint(conflict); !strings.Contains(hint, "orders") {
		t.Errorf("GetTroubleshootingHint() = %q", hint)
	}

	plain := errors.New("plain")
	if got := GetShortErrorMessage(plain); got != "plain" {
		t.Errorf("GetShortErrorMessage(plain) = %q", got)
	}
	if got := GetTroubleshootingHint(plain); got == "" {
		t.Error("expected fallback hint")
	}
}
