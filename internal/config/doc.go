// Package config provides user configuration management for catalogctl.
//
// A YAML file remembers admin servers per store and CLI preferences so
// commands can run without repeating --api and --store every time.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/catalogctl/config.yaml or $HOME/.config/catalogctl/config.yaml
//   - macOS: $HOME/.config/catalogctl/config.yaml
//   - Windows: %LOCALAPPDATA%\catalogctl\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	target, err := registry.Resolve(apiFlag, storeFlag)
//	if err != nil {
//	    return err
//	}
//	registry.TouchStore(target.StoreID, target.APIURL)
//	_ = registry.Save()
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File writes are protected by a mutex and are atomic (write then rename).
package config
