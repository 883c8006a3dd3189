// Package discovery finds store admin servers on the local network.
//
// Admin servers advertise themselves over mDNS as "_catalog-admin._tcp"
// services. Two TXT records are understood:
//
//	path=/admin          API root under the advertised host and port
//	stores=store_1,s2    store ids served (absent means any)
//
// Usage:
//
//	scanner := discovery.NewScanner()
//	servers, err := scanner.Scan(ctx)
//	for _, s := range servers {
//	    fmt.Println(s.BaseURL(), s.Stores)
//	}
package discovery
