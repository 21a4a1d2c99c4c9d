package users

import "strings"

// RequiredFields are the profile columns that must be filled before a profile
// counts as complete.
var RequiredFields = []string{"full_name", "phone", "address", "city", "postal_code", "date_of_birth"}

// MissingFields lists the required fields that are blank, in RequiredFields
// order. A nil profile misses everything.
func MissingFields(p *Profile) []string {
	if p == nil {
		return append([]string(nil), RequiredFields...)
	}
	values := map[string]string{
		"full_name":     p.FullName,
		"phone":         p.Phone,
		"address":       p.Address,
		"city":          p.City,
		"postal_code":   p.PostalCode,
		"date_of_birth": p.DateOfBirth,
	}
	missing := []string{}
	for _, f := range RequiredFields {
		if strings.TrimSpace(values[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// CheckProfileCompletion is a client-facing gate only; nothing server-side
// relies on it.
func CheckProfileCompletion(p *Profile) bool {
	return len(MissingFields(p)) == 0
}
