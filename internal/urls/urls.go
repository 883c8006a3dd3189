package urls

import (
	"net/url"
	"strings"
)

// ProductsPath is the admin view listing a store's products. Hosts navigate
// here after a successful save or delete.
func ProductsPath(storeID string) string {
	return "/" + url.PathEscape(storeID) + "/products"
}

// ProductPath is the admin view for one product.
func ProductPath(storeID, productID string) string {
	return ProductsPath(storeID) + "/" + url.PathEscape(productID)
}

// APIProducts is the admin API collection endpoint for a store's products.
func APIProducts(storeID string) string {
	return "/api/" + url.PathEscape(storeID) + "/products"
}

// APIProduct is the admin API endpoint for one product.
func APIProduct(storeID, productID string) string {
	return APIProducts(storeID) + "/" + url.PathEscape(productID)
}

// APIReferences is the admin API endpoint for a reference list kind
// ("categories", "sizes" or "colors").
func APIReferences(storeID, kind string) string {
	return "/api/" + url.PathEscape(storeID) + "/" + url.PathEscape(kind)
}

// Join appends an endpoint path to a base URL, tolerating a trailing slash
// on the base.
func Join(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

// TroubleshootingGuide completes "See ..." lines next to connection errors.
const TroubleshootingGuide = "'catalogctl config show' for the configured API URL"
