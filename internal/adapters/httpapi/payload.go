package httpapi

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"github.com/tidwall/gjson"
)

// Payload is a backend response body as received
type Payload struct {
	Status      int
	ContentType string
	Raw         []byte
}

// IsJSON reports whether the response declared a JSON content type
func (p *Payload) IsJSON() bool {
	mediaType, _, err := mime.ParseMediaType(p.ContentType)
	if err != nil {
		return strings.Contains(strings.ToLower(p.ContentType), "json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// Text returns the body as text
func (p *Payload) Text() string {
	return string(p.Raw)
}

// JSON returns the parsed body. A text body is exposed as a string result.
func (p *Payload) JSON() gjson.Result {
	if !p.IsJSON() {
		return gjson.Result{Type: gjson.String, Str: p.Text(), Raw: fmt.Sprintf("%q", p.Text())}
	}
	return gjson.ParseBytes(p.Raw)
}

// Data returns the body with a {data: ...} envelope removed when present.
// Both the bare and enveloped shapes are in use on the backend.
func (p *Payload) Data() gjson.Result {
	return Unwrap(p.JSON())
}

// Decode decodes the unwrapped body into v
func (p *Payload) Decode(v interface{}) error {
	data := p.Data()
	if !data.Exists() {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal([]byte(data.Raw), v); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// Unwrap removes a data envelope from a result
func Unwrap(r gjson.Result) gjson.Result {
	if !r.IsObject() {
		return r
	}
	for _, key := range []string{"data", "Data"} {
		if inner := r.Get(key); inner.Exists() {
			return inner
		}
	}
	return r
}
