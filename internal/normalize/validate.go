package normalize

import (
	"net/url"
	"regexp"
	"unicode/utf8"
)

var (
	postalCodeRe = regexp.MustCompile(`^[0-9]{5}$`)
	slugRe       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// Platform link shapes. Kept loose on purpose: country TLDs vary
	// (airbnb.fr, airbnb.co.uk) and booking.com paths carry locale segments.
	airbnbURLRe  = regexp.MustCompile(`^https?://(?:www\.)?airbnb\.[a-z.]{2,10}/`)
	bookingURLRe = regexp.MustCompile(`^https?://(?:www\.)?booking\.com/`)
)

type urlOpts struct {
	AllowEmpty bool
	Pattern    *regexp.Regexp
	ErrMessage string
}

// validateURL trims v and checks it parses as an absolute http(s) URL. Empty
// input is returned as "" when allowed, otherwise it fails with ErrMessage.
// When a pattern is set the raw trimmed string must match it too.
func validateURL(v any, o urlOpts) (string, error) {
	s := trimmedString(v)
	if s == "" {
		if o.AllowEmpty {
			return "", nil
		}
		return "", failf("%s", o.ErrMessage)
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", failf("%s", o.ErrMessage)
	}
	if o.Pattern != nil && !o.Pattern.MatchString(s) {
		return "", failf("%s", o.ErrMessage)
	}
	return s, nil
}

// validatePostalCode requires exactly five digits after trimming.
func validatePostalCode(v any) (string, error) {
	s := trimmedString(v)
	if !postalCodeRe.MatchString(s) {
		return "", failf("postal code must be exactly 5 digits")
	}
	return s, nil
}

// validateSlug requires a non-empty lowercase alphanumeric slug with single
// inner hyphens.
func validateSlug(v any) (string, error) {
	s := trimmedString(v)
	if s == "" {
		return "", failf("slug is required")
	}
	if !slugRe.MatchString(s) {
		return "", failf("slug may only contain lowercase letters, digits and single hyphens")
	}
	return s, nil
}

// validateMaxLen fails when s exceeds max characters. Lengths are counted in
// runes, not bytes; accented content must not hit the ceiling early.
func validateMaxLen(s, field string, max int) error {
	if utf8.RuneCountInString(s) > max {
		return failf("%s must be %d characters or fewer", field, max)
	}
	return nil
}
