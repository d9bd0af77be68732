package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentKind is the decode path chosen for a successful response.
type ContentKind int

const (
	// ContentEmpty is a 204 No Content response.
	ContentEmpty ContentKind = iota
	// ContentBinary is an opaque byte blob (PDF, octet-stream).
	ContentBinary
	// ContentJSON is a parsed JSON document.
	ContentJSON
	// ContentText is everything else, returned as raw text.
	ContentText
)

func (k ContentKind) String() string {
	switch k {
	case ContentEmpty:
		return "empty"
	case ContentBinary:
		return "binary"
	case ContentJSON:
		return "json"
	default:
		return "text"
	}
}

// contentKinds is the complete dispatch table for declared content types.
// Entries are matched by substring in order; anything unmatched is text.
var contentKinds = []struct {
	marker string
	kind   ContentKind
}{
	{marker: "application/pdf", kind: ContentBinary},
	{marker: "application/octet-stream", kind: ContentBinary},
	{marker: "application/json", kind: ContentJSON},
}

func kindOf(contentType string) ContentKind {
	ct := strings.ToLower(contentType)
	for _, k := range contentKinds {
		if strings.Contains(ct, k.marker) {
			return k.kind
		}
	}
	return ContentText
}

func isJSONContentType(contentType string) bool {
	return kindOf(contentType) == ContentJSON
}

// Payload is the decoded body of a successful response.
type Payload struct {
	Kind        ContentKind
	ContentType string
	Data        []byte
}

// Empty reports whether the response carried no result.
func (p *Payload) Empty() bool {
	return p == nil || p.Kind == ContentEmpty
}

// Bytes returns the raw body. It is nil for an empty payload.
func (p *Payload) Bytes() []byte {
	if p.Empty() {
		return nil
	}
	return p.Data
}

// Text returns the body as a string.
func (p *Payload) Text() string {
	return string(p.Bytes())
}

// Decode unmarshals a JSON payload into v. An empty payload leaves v untouched.
func (p *Payload) Decode(v any) error {
	if p.Empty() {
		return nil
	}
	if p.Kind != ContentJSON {
		return fmt.Errorf("decode %s response as json: unexpected content type %q", p.Kind, p.ContentType)
	}
	if err := json.Unmarshal(p.Data, v); err != nil {
		return fmt.Errorf("decode json response: %w", err)
	}
	return nil
}

// Value returns the parsed JSON document, nil for an empty payload, the
// bytes for a binary payload and the string for a text payload.
func (p *Payload) Value() (any, error) {
	switch {
	case p.Empty():
		return nil, nil
	case p.Kind == ContentBinary:
		return p.Data, nil
	case p.Kind == ContentJSON:
		var v any
		if err := p.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return p.Text(), nil
	}
}
