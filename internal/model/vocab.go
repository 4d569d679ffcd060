package model

// Severities lists the accepted triage severity grades in canonical order.
// The roster carries them in the SEV column; casing is normalized before
// membership is checked.
var Severities = []string{"I", "II", "III", "IV", "V"}

// ValidSeverity reports whether s is one of the accepted severity grades.
// The empty string is not a member; the validator treats it separately.
func ValidSeverity(s string) bool {
	for _, g := range Severities {
		if s == g {
			return true
		}
	}
	return false
}

// Site identifies one hospital site. Patient records are scoped per site:
// the same national ID under two different sites is two distinct patients.
type Site struct {
	Name  string // tag stored with the record, e.g. "central"
	Label string // human-readable name for reports
}

// AllSites lists the known hospital sites. The first entry is the default
// when the caller does not specify one.
var AllSites = []Site{
	{Name: "central", Label: "Hospital Central"},
	{Name: "norte", Label: "Clínica Norte"},
	{Name: "pirovano", Label: "Hospital Pirovano"},
}

// DefaultSite returns the site used when none is specified.
func DefaultSite() Site {
	return AllSites[0]
}

// SiteByName returns the Site for the given tag, or ok=false.
func SiteByName(name string) (Site, bool) {
	for _, s := range AllSites {
		if s.Name == name {
			return s, true
		}
	}
	return Site{}, false
}
