package ratelimit

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// keySeparator joins the client and endpoint components of a key. Neither
// component can contain it under normal input: IPs and mount paths don't,
// and a hostile X-Forwarded-For only splits its own bucket.
const keySeparator = ":"

// unknownClient is the sentinel used when no client identity can be derived
// from the request.
const unknownClient = "unknown"

// KeyFunc extracts the throttling key from a request. The default keys by
// client IP and mount path; substitute a custom KeyFunc to key by API
// credential or anything else.
type KeyFunc func(c *gin.Context) string

// ClientKey returns the client identity component of the default key: the
// first X-Forwarded-For entry when present, else the host part of the
// remote address, else "unknown".
func ClientKey(c *gin.Context) string {
	if xff := c.Request.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	addr := strings.TrimSpace(c.Request.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	if addr != "" {
		return addr
	}
	return unknownClient
}

// KeyForPath returns the default KeyFunc for an endpoint mounted at path:
// "<client>:<path>". The mount path is fixed at registration, so query
// strings and trailing route parameters never fragment the key space.
func KeyForPath(path string) KeyFunc {
	return func(c *gin.Context) string {
		return ClientKey(c) + keySeparator + path
	}
}

// KeyByHeader returns a KeyFunc keyed by the value of header joined with
// the mount path, falling back to the client IP when the header is absent.
// Useful for API key-based throttling.
func KeyByHeader(header, path string) KeyFunc {
	return func(c *gin.Context) string {
		if v := strings.TrimSpace(c.Request.Header.Get(header)); v != "" {
			return v + keySeparator + path
		}
		return ClientKey(c) + keySeparator + path
	}
}
