package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Server is a store admin API found on the local network
type Server struct {
	// Instance is the advertised service instance name
	Instance string

	// Hostname is the mDNS hostname (e.g., "admin.local.")
	Hostname string

	// IP is the address to dial; IPv6 addresses are bracketed
	IP string

	// Port is the HTTP port
	Port int

	// Path is the API root from the "path" TXT record (e.g., "/admin")
	Path string

	// Stores lists store ids from the "stores" TXT record
	Stores []string

	// Metadata contains every TXT record
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable description
func (s *Server) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, s.BaseURL())
}

// BaseURL returns the admin API root
func (s *Server) BaseURL() string {
	path := strings.TrimRight(s.Path, "/")
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("http://%s:%d%s", s.IP, s.Port, path)
}

// Serves reports whether the server advertises storeID. A server that
// advertises no stores is assumed to serve any.
func (s *Server) Serves(storeID string) bool {
	if len(s.Stores) == 0 {
		return true
	}
	for _, id := range s.Stores {
		if id == storeID {
			return true
		}
	}
	return false
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
