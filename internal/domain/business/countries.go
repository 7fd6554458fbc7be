package business

import "strings"

// countryInfo is the per-country reference data the onboarding form needs:
// ISO code, whether addresses carry a state, and the state list used to
// normalize postal-lookup results.
type countryInfo struct {
	code      string
	hasStates bool
	states    []string
}

// countries keys are display names as the backend expects them.
var countries = map[string]countryInfo{
	"India": {code: "IN", hasStates: true, states: []string{
		"Andhra Pradesh", "Assam", "Bihar", "Chhattisgarh", "Delhi", "Goa",
		"Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
		"Kerala", "Madhya Pradesh", "Maharashtra", "Odisha", "Punjab",
		"Rajasthan", "Tamil Nadu", "Telangana", "Uttar Pradesh",
		"Uttarakhand", "West Bengal",
	}},
	"United States": {code: "US", hasStates: true, states: []string{
		"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
		"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
		"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
		"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
		"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
		"New Hampshire", "New Jersey", "New Mexico", "New York",
		"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
		"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
		"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
		"West Virginia", "Wisconsin", "Wyoming",
	}},
	"Canada": {code: "CA", hasStates: true, states: []string{
		"Alberta", "British Columbia", "Manitoba", "New Brunswick",
		"Newfoundland and Labrador", "Nova Scotia", "Ontario",
		"Prince Edward Island", "Quebec", "Saskatchewan",
	}},
	"Australia": {code: "AU", hasStates: true, states: []string{
		"Australian Capital Territory", "New South Wales",
		"Northern Territory", "Queensland", "South Australia", "Tasmania",
		"Victoria", "Western Australia",
	}},
	"United Kingdom":       {code: "GB", hasStates: false},
	"United Arab Emirates": {code: "AE", hasStates: false},
	"Singapore":            {code: "SG", hasStates: false},
	"Germany": {code: "DE", hasStates: true, states: []string{
		"Baden-Württemberg", "Bavaria", "Berlin", "Brandenburg", "Bremen",
		"Hamburg", "Hesse", "Lower Saxony", "North Rhine-Westphalia",
		"Rhineland-Palatinate", "Saarland", "Saxony", "Saxony-Anhalt",
		"Schleswig-Holstein", "Thuringia",
	}},
}

// HasStates reports whether addresses in the named country carry a state.
// Unknown countries are treated as stateless so the field stays optional.
func HasStates(country string) bool {
	info, ok := countries[country]
	return ok && info.hasStates
}

// CountryCode returns the lowercase ISO code for a country display name.
func CountryCode(country string) (string, bool) {
	info, ok := countries[country]
	if !ok {
		return "", false
	}
	return strings.ToLower(info.code), true
}

// CountryByCode resolves an ISO code (any case) to a display name.
func CountryByCode(code string) (string, bool) {
	code = strings.ToUpper(code)
	for name, info := range countries {
		if info.code == code {
			return name, true
		}
	}
	return "", false
}

// MatchCountry normalizes a country name from an external source to a known
// display name, tolerating case and partial matches.
func MatchCountry(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if _, ok := countries[name]; ok {
		return name, true
	}
	lower := strings.ToLower(name)
	for known := range countries {
		kl := strings.ToLower(known)
		if kl == lower || strings.Contains(kl, lower) || strings.Contains(lower, kl) {
			return known, true
		}
	}
	return "", false
}

// MatchState normalizes a state name or abbreviation from a postal lookup to
// the country's state list, tolerating case and partial matches.
func MatchState(country, state string) (string, bool) {
	info, ok := countries[country]
	if !ok || !info.hasStates || state == "" {
		return "", false
	}
	lower := strings.ToLower(state)
	for _, known := range info.states {
		kl := strings.ToLower(known)
		if kl == lower || strings.Contains(kl, lower) || strings.Contains(lower, kl) {
			return known, true
		}
	}
	return "", false
}
