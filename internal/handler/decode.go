package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// jsonFields is a decoded JSON object whose values are kept raw so callers
// can tell a missing field from one with the wrong type.
type jsonFields map[string]json.RawMessage

// decodeFields reads a JSON object from the request body. An empty body
// decodes to an empty object.
func decodeFields(w http.ResponseWriter, r *http.Request) (jsonFields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	fields := jsonFields{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return jsonFields{}, nil
		}
		return nil, err
	}
	return fields, nil
}

// String returns the field as a string. Missing, null and non-string
// values yield ok == false.
func (f jsonFields) String(key string) (s string, ok bool) {
	raw, found := f[key]
	if !found {
		return "", false
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	// null unmarshals into a string without error.
	if string(raw) == "null" {
		return "", false
	}
	return s, true
}

// Has reports whether key is present with a non-null value.
func (f jsonFields) Has(key string) bool {
	raw, found := f[key]
	return found && string(raw) != "null"
}
