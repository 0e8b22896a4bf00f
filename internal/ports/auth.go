package ports

// AuthProvider supplies the Authorization header for upstream requests.
// Implementations may reload credentials at runtime; callers ask again on
// every request rather than caching the value.
type AuthProvider interface {
	// Authorization returns the header value ("Basic ..." or "Bearer ...")
	// and whether credentials are configured at all.
	Authorization() (value string, ok bool)
}
