// Package cookies persists the backend's session cookies in the local SQLite
// database so a session survives CLI restarts.
//
// A Record is keyed by (Origin, Name, Path). Origin is the scheme://host the
// cookie was received from; it is needed to hand the cookie back to a
// net/http CookieJar on load. Expires is stored as unix seconds, 0 meaning
// a session cookie.
package cookies
