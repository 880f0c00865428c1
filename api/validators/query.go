package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
)

// ParseQueryDate reads an optional YYYY-MM-DD query parameter, returning
// defaultVal when absent.
func ParseQueryDate(r *http.Request, key string, defaultVal time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a YYYY-MM-DD date").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
