package config

import (
	"errors"
	"time"
)

const (
	// DefaultAPIURL is used when neither a flag nor the config names a server.
	DefaultAPIURL = "http://localhost:3000"

	defaultDiscoverTimeout = 5
	defaultRequestTimeout  = 10
)

// ErrNoStore is returned by Resolve when no store id is configured.
var ErrNoStore = errors.New("no store selected (use --store or set preferences.default_store)")

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int               `yaml:"version"`
	Stores      map[string]*Store `yaml:"stores,omitempty"` // Keyed by store id
	Preferences *Preferences      `yaml:"preferences,omitempty"`
}

// Store is remembered metadata for one store the user has edited.
type Store struct {
	Name     string    `yaml:"name,omitempty"`      // Display name
	APIURL   string    `yaml:"api_url,omitempty"`   // Admin server serving this store
	LastUsed time.Time `yaml:"last_used,omitempty"` // Last time a command targeted it
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	APIURL          string `yaml:"api_url,omitempty"`       // Default admin server
	DefaultStore    string `yaml:"default_store,omitempty"` // Store used when --store is omitted
	DiscoverTimeout int    `yaml:"discover_timeout"`        // mDNS discovery timeout in seconds
	RequestTimeout  int    `yaml:"request_timeout"`         // HTTP request timeout in seconds
}

// Target is the resolved admin server and store for a command.
type Target struct {
	APIURL  string
	StoreID string
}

func defaultPreferences() *Preferences {
	return &Preferences{
		APIURL:          DefaultAPIURL,
		DiscoverTimeout: defaultDiscoverTimeout,
		RequestTimeout:  defaultRequestTimeout,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Stores:      make(map[string]*Store),
		Preferences: defaultPreferences(),
	}
}

// GetStore retrieves store metadata by id.
// Returns nil if the store doesn't exist in the registry.
func (r *Registry) GetStore(id string) *Store {
	return r.Stores[id]
}

// EnsureStore returns the entry for id, creating it if needed.
func (r *Registry) EnsureStore(id string) *Store {
	if r.Stores == nil {
		r.Stores = make(map[string]*Store)
	}
	if store, exists := r.Stores[id]; exists {
		return store
	}
	store := &Store{}
	r.Stores[id] = store
	return store
}

// TouchStore records that a command just targeted id on apiURL.
func (r *Registry) TouchStore(id, apiURL string) {
	store := r.EnsureStore(id)
	store.LastUsed = time.Now()
	if apiURL != "" {
		store.APIURL = apiURL
	}
}

// Resolve picks the admin server and store for a command. Flags win, then
// the store's remembered server, then preferences, then DefaultAPIURL.
func (r *Registry) Resolve(flagAPI, flagStore string) (Target, error) {
	prefs := r.Preferences
	if prefs == nil {
		prefs = defaultPreferences()
	}

	storeID := flagStore
	if storeID == "" {
		storeID = prefs.DefaultStore
	}
	if storeID == "" {
		return Target{}, ErrNoStore
	}

	apiURL := flagAPI
	if apiURL == "" {
		if store := r.GetStore(storeID); store != nil {
			apiURL = store.APIURL
		}
	}
	if apiURL == "" {
		apiURL = prefs.APIURL
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return Target{APIURL: apiURL, StoreID: storeID}, nil
}

// RequestTimeout returns the configured HTTP timeout.
func (r *Registry) RequestTimeout() time.Duration {
	if r.Preferences == nil || r.Preferences.RequestTimeout <= 0 {
		return defaultRequestTimeout * time.Second
	}
	return time.Duration(r.Preferences.RequestTimeout) * time.Second
}

// DiscoverTimeout returns the configured mDNS browse duration.
func (r *Registry) DiscoverTimeout() time.Duration {
	if r.Preferences == nil || r.Preferences.DiscoverTimeout <= 0 {
		return defaultDiscoverTimeout * time.Second
	}
	return time.Duration(r.Preferences.DiscoverTimeout) * time.Second
}
