package normalize

import (
	"strings"

	"github.com/devillers/checkin-sub000/internal/domain"
)

// formatAddress builds the single-line label from the discrete parts: the
// street line ("12 Rue X" when both parts exist), the complement,
// "postalCode city" and the country, skipping whatever is empty.
func formatAddress(a domain.Address) string {
	streetLine := joinNonEmpty(" ", a.StreetNumber, a.Street)
	postalCity := joinNonEmpty(" ", a.PostalCode, a.City)
	return joinNonEmpty(", ", streetLine, a.Complement, postalCity, a.Country)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, sep)
}
