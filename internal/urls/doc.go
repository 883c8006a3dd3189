// Package urls centralizes the paths catalogctl builds: admin view routes
// used for navigation, admin API endpoints, and documentation links.
//
// Usage:
//
//	import "github.com/muurk/catalogctl/internal/urls"
//
//	endpoint := urls.Join(baseURL, urls.APIProduct(storeID, productID))
package urls
