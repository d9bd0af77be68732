// Package session keeps the backend session alive across CLI restarts.
//
// # Overview
//
// The backend authenticates with an HTTP-only session cookie. Jar is an
// http.CookieJar that forwards to an in-memory net/http/cookiejar and
// mirrors every cookie it accepts into the local SQLite database. On
// startup Session.Restore replays the stored cookies into the jar so the
// first request already carries the session.
//
// # Key Types
//
//   - Jar: the persistent cookie jar handed to the HTTP client.
//   - Session: owns the database, the jar and the session metadata
//     (username, base URL, login time).
//
// # Expiry
//
// Expiry reports when a cookie stops being valid. It prefers the cookie's
// Expires attribute and falls back to the "exp" claim when the value is a
// JWT. The claim is read without verifying the signature; it is only used
// for display.
//
// # Typical Usage
//
//	s, err := session.Open(ctx, cfg.SessionDB, logger)
//	if err != nil { ... }
//	defer s.Close()
//	if err := s.Restore(ctx, cfg.BaseURL); err != nil { ... }
//	hc := &http.Client{Jar: s.Jar()}
package session
