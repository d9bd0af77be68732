// Package client is the transport layer between the CLI and the backend
// REST API.
//
// # Overview
//
// HTTPClient.Request performs exactly one HTTP call:
//  1. The path is resolved against the base URL unless it is already an
//     absolute http(s) URL. Nil query values are dropped.
//  2. A *Form body is sent as multipart/form-data; any other body is
//     marshalled to JSON with Content-Type application/json unless the
//     caller set a Content-Type.
//  3. Cookies from the http.Client jar are attached, carrying the session.
//  4. A 2xx response becomes a *Payload whose Kind is picked from the
//     declared content type: binary (application/pdf,
//     application/octet-stream), JSON (application/json) or text. 204 is
//     always empty.
//  5. Anything else becomes an *APIError.
//
// # Error Handling
//
// *APIError carries Status, URL, Message and an optional server payload.
// ErrAuthRequired is the local "session required" signal. Classify maps any
// error onto ErrorKind so callers can switch over every case:
//
//	switch client.Classify(err) {
//	case client.KindNone:
//	case client.KindTransport:
//	case client.KindAuthRequired:
//	case client.KindUnknown:
//	}
package client
