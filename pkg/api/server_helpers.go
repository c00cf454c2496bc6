package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// queryUint64 parses a required uint64 query parameter.
func queryUint64(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s parameter is required", name)
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a numeric node ID", name)
	}
	return value, nil
}

// queryInt parses an optional int query parameter, returning
// defaultValue when absent.
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}
