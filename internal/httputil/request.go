package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodySize caps JSON request bodies. Evidence and complaint uploads
// go through multipart parsing, which carries its own limit.
const maxBodySize = 1 << 20

// ParseJSON decodes a JSON request body into v. The body is wrapped in
// a MaxBytesReader so an oversized payload gets a 413 instead of being
// read to the end. Unknown fields are not rejected; the draft routes
// carry an answers map keyed by template question ids, and each
// service validates its own request shape downstream.
func ParseJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
