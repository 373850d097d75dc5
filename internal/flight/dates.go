package flight

import (
	"strings"
	"time"
)

// wireDateFormat is the only date format the provider accepts.
const wireDateFormat = "02/01/2006"

// dateLayouts are tried in order against the raw input. The last entry lets
// already-conformant values reparse and pass through unchanged.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	wireDateFormat,
}

// normalizeDate converts a date or datetime string to DD/MM/YYYY. When no
// layout matches it falls back to splitting off a time component and retrying
// the date part alone. The second return value reports whether normalization
// succeeded; on failure the original string is returned unmodified so the
// caller can decide to forward it anyway.
func normalizeDate(raw string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(wireDateFormat), true
		}
	}

	for _, sep := range []string{"T", " "} {
		if !strings.Contains(raw, sep) {
			continue
		}
		datePart := strings.SplitN(raw, sep, 2)[0]
		if t, err := time.Parse("2006-01-02", datePart); err == nil {
			return t.Format(wireDateFormat), true
		}
	}

	return raw, false
}
