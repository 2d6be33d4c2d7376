package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxRequestBodySize caps request bodies at 1 MiB; every payload the API
// accepts is far smaller.
const maxRequestBodySize = 1 << 20

// DecodeJSON decodes the request body into v, rejecting oversized bodies
// and trailing garbage.
func DecodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}
