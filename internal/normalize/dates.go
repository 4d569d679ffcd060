package normalize

import (
	"regexp"
	"strings"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AdmissionDate returns s when it is a YYYY-MM-DD date, otherwise fallback.
// A malformed caller-supplied date never rejects the batch; the fallback is
// typically today's date.
func AdmissionDate(s, fallback string) string {
	s = strings.TrimSpace(s)
	if isoDate.MatchString(s) {
		return s
	}
	return fallback
}
