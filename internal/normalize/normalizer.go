// Package normalize maps source-specific raw activity payloads into the
// canonical NormalizedActivity shape. Each known source registers a pure
// mapper function; adding a provider means adding one registry entry.
//
// Unknown sources and unknown activity vocabulary are never errors: provider
// vocabularies evolve, and ingestion must degrade to best-effort defaults
// rather than crash.
package normalize

import (
	"strconv"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

// mapperFunc converts one raw provider payload into a canonical record.
// Mappers are pure functions of their input and must not return errors;
// missing fields default to zero values per field.
type mapperFunc func(raw map[string]any) models.NormalizedActivity

// mappers is the source registry. Process-wide immutable after init.
var mappers = map[string]mapperFunc{
	"apple_health":   mapAppleHealth,
	"health_connect": mapHealthConnect,
	"strava":         mapStrava,
	"fitbit":         mapFitbit,
	"oura":           mapOura,
	"withings":       mapWithings,
	"manual":         mapManual,
}

// Normalize converts a raw payload from the named source into a canonical
// activity record. An unrecognized source yields a record with default
// values and ActivityUnknown.
func Normalize(source string, raw map[string]any) models.NormalizedActivity {
	mapper, ok := mappers[source]
	if !ok {
		return models.NormalizedActivity{
			Source:       source,
			ActivityType: models.ActivityUnknown,
		}
	}

	activity := mapper(raw)
	activity.Source = source
	return activity
}

// KnownSource reports whether a mapper is registered for the source.
func KnownSource(source string) bool {
	_, ok := mappers[source]
	return ok
}

// rawString extracts a string field, tolerating numeric IDs that some
// providers send as JSON numbers.
func rawString(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

// rawFloat extracts a numeric field, returning ok=false when absent or
// non-numeric.
func rawFloat(raw map[string]any, key string) (float64, bool) {
	v, ok := raw[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// rawInt extracts an integer vocabulary code.
func rawInt(raw map[string]any, key string) (int, bool) {
	f, ok := rawFloat(raw, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// rawTime extracts an RFC 3339 timestamp. Unparseable or absent values
// yield nil; a record without a temporal anchor is still ingestible.
func rawTime(raw map[string]any, key string) *time.Time {
	s, ok := raw[key].(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// rawEpoch extracts a Unix-seconds timestamp (Withings style).
func rawEpoch(raw map[string]any, key string) *time.Time {
	f, ok := rawFloat(raw, key)
	if !ok || f <= 0 {
		return nil
	}
	t := time.Unix(int64(f), 0).UTC()
	return &t
}
