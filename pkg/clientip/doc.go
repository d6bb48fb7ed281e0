// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are only honoured when the Resolver is told to trust them;
// anything else falls back to the connection's RemoteAddr. Results are
// normalized through net.ParseIP, so IPv6 addresses compare reliably.
//
//	res := clientip.New("X-Forwarded-For")
//	ip := res.IP(r)
//
// GetIP is a shortcut trusting DefaultHeaders.
package clientip
