// Package models defines the request and response shapes exchanged with the
// backend, plus the local validation rules applied before a request is sent.
package models
