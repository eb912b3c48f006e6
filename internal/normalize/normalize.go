// Package normalize turns an arbitrarily-shaped property submission into the
// one canonical, invariant-respecting representation the rest of the back
// office works with. Validation is fail-fast: the first violated rule aborts
// the whole pass with a single ValidationError and no partial result.
package normalize

import (
	"strings"

	"github.com/devillers/checkin-sub000/internal/domain"
)

// Normalize runs the full coercion/validation pipeline over sub, in a fixed
// order, and assembles both the nested canonical structure and the flat
// mirror fields from the same intermediate values. It is a pure function of
// its input: no I/O, no shared state, safe to call concurrently.
func Normalize(sub domain.Submission, ids domain.IDGenerator) (domain.Property, error) {
	general := sub.General
	address := sub.Address
	presence := sub.OnlinePresence
	operations := sub.Operations
	seo := sub.SEO

	// 1) name
	name := trimmedString(general["name"])
	if name == "" {
		return domain.Property{}, failf("property name is required")
	}

	// 2) type: default apartment, but reject anything outside the known set
	propType := domain.TypeApartment
	if raw := trimmedString(general["type"]); raw != "" {
		t, ok := domain.ParsePropertyType(raw)
		if !ok {
			return domain.Property{}, failf("unknown property type %q", raw)
		}
		propType = t
	}

	// 3) short description
	shortDesc := trimmedString(general["shortDescription"])
	if shortDesc == "" {
		return domain.Property{}, failf("short description is required")
	}
	if err := validateMaxLen(shortDesc, "short description", 160); err != nil {
		return domain.Property{}, err
	}

	// 4) long description
	longDesc := trimmedString(general["longDescription"])

	// 5) wifi credentials
	wifiName := trimmedString(general["wifiName"])
	wifiPassword := trimmedString(general["wifiPassword"])
	if err := validateMaxLen(wifiName, "wifi name", 120); err != nil {
		return domain.Property{}, err
	}
	if err := validateMaxLen(wifiPassword, "wifi password", 120); err != nil {
		return domain.Property{}, err
	}

	// 6) capacity and room counts. bedrooms is resolved once and reused as the
	// beds fallback so the two cannot drift apart.
	capRaw := domain.SubMap(general, "capacity")
	capacity := domain.Capacity{
		Adults:   boundedInt(capRaw["adults"], intOpts{Min: 1, Fallback: 1}),
		Children: boundedInt(capRaw["children"], intOpts{Min: 0, Fallback: 0}),
	}
	bedrooms := boundedInt(general["bedrooms"], intOpts{Min: 0, Fallback: 0})
	beds := boundedInt(general["beds"], intOpts{Min: 0, Fallback: bedrooms})
	bathrooms := boundedInt(general["bathrooms"], intOpts{Min: 0, Fallback: 0})
	surface := boundedFloat(general["surface"], floatOpts{Min: 0, Fallback: nil})
	maxGuests := capacity.Adults + capacity.Children

	// 7) address
	street := trimmedString(address["street"])
	if street == "" {
		return domain.Property{}, failf("street is required")
	}
	postalCode, err := validatePostalCode(address["postalCode"])
	if err != nil {
		return domain.Property{}, err
	}
	city := trimmedString(address["city"])
	if city == "" {
		return domain.Property{}, failf("city is required")
	}
	country := trimmedString(address["country"])
	if country == "" {
		country = "France"
	}
	lat, err := optionalCoordinate(address["latitude"], "latitude")
	if err != nil {
		return domain.Property{}, err
	}
	lon, err := optionalCoordinate(address["longitude"], "longitude")
	if err != nil {
		return domain.Property{}, err
	}
	addr := domain.Address{
		StreetNumber: trimmedString(address["streetNumber"]),
		Street:       street,
		Complement:   trimmedString(address["complement"]),
		PostalCode:   postalCode,
		City:         city,
		Country:      country,
		Latitude:     lat,
		Longitude:    lon,
	}

	// 8) formatted address label
	addr.Formatted = formatAddress(addr)

	// 9) online presence
	airbnbURL, err := validateURL(presence["airbnbUrl"], urlOpts{
		AllowEmpty: true,
		Pattern:    airbnbURLRe,
		ErrMessage: "Airbnb URL must be a valid airbnb.* link",
	})
	if err != nil {
		return domain.Property{}, err
	}
	bookingURL, err := validateURL(presence["bookingUrl"], urlOpts{
		AllowEmpty: true,
		Pattern:    bookingURLRe,
		ErrMessage: "Booking URL must be a valid booking.com link",
	})
	if err != nil {
		return domain.Property{}, err
	}
	slug, err := validateSlug(presence["slug"])
	if err != nil {
		return domain.Property{}, err
	}

	// 10) media galleries
	medias, err := normalizeMedias(sub.Medias, ids)
	if err != nil {
		return domain.Property{}, err
	}

	// 11) operations
	deposit, err := resolveDeposit(domain.SubMap(operations, "deposit"))
	if err != nil {
		return domain.Property{}, err
	}
	cityTaxRaw := domain.SubMap(operations, "cityTax")
	zero := 0.0
	ops := domain.Operations{
		Deposit:        deposit,
		CheckInTime:    trimmedString(operations["checkInTime"]),
		CheckOutTime:   trimmedString(operations["checkOutTime"]),
		SmokingAllowed: asBool(operations["smokingAllowed"]),
		PetsAllowed:    asBool(operations["petsAllowed"]),
		Equipments:     stringList(operations["equipments"]),
		CityTax: domain.CityTax{
			Enabled:        asBool(cityTaxRaw["enabled"]),
			AmountPerNight: *boundedFloat(cityTaxRaw["amountPerNight"], floatOpts{Min: 0, Fallback: &zero}),
		},
	}

	// 12) SEO metadata
	metaTitle := trimmedString(seo["metaTitle"])
	if err := validateMaxLen(metaTitle, "meta title", 70); err != nil {
		return domain.Property{}, err
	}
	metaDescription := trimmedString(seo["metaDescription"])
	if err := validateMaxLen(metaDescription, "meta description", 160); err != nil {
		return domain.Property{}, err
	}

	// 13) hero/cover selection over the flattened list
	profilePhoto := ""
	if hero := selectHero(medias.Flattened); hero != nil {
		profilePhoto = hero.URL
	}
	coverPhoto := ""
	if cover := selectCover(medias.Flattened); cover != nil {
		coverPhoto = cover.URL
	}
	descriptionPhotos := make([]string, 0, len(medias.Flattened))
	for _, m := range medias.Flattened {
		if !m.Hidden {
			descriptionPhotos = append(descriptionPhotos, m.URL)
		}
	}

	// 14) assemble nested structure and flat mirrors from the same locals
	p := domain.Property{
		General: domain.General{
			Name:             name,
			Type:             propType,
			ShortDescription: shortDesc,
			LongDescription:  longDesc,
			WifiName:         wifiName,
			WifiPassword:     wifiPassword,
			Capacity:         capacity,
			Bedrooms:         bedrooms,
			Beds:             beds,
			Bathrooms:        bathrooms,
			Surface:          surface,
		},
		Address: addr,
		OnlinePresence: domain.OnlinePresence{
			AirbnbURL:  airbnbURL,
			BookingURL: bookingURL,
			Slug:       slug,
		},
		Medias:     medias,
		Operations: ops,
		SEO: domain.SEO{
			MetaTitle:       metaTitle,
			MetaDescription: metaDescription,
		},

		Name:              name,
		Type:              propType,
		Capacity:          maxGuests,
		Bedrooms:          bedrooms,
		Beds:              beds,
		Bathrooms:         bathrooms,
		Surface:           surface,
		ShortDescription:  shortDesc,
		Description:       longDesc,
		MaxGuests:         maxGuests,
		Amenities:         ops.Equipments,
		AirbnbURL:         airbnbURL,
		BookingURL:        bookingURL,
		Slug:              slug,
		ProfilePhoto:      profilePhoto,
		CoverPhoto:        coverPhoto,
		DescriptionPhotos: descriptionPhotos,
		AddressLabel:      addr.Formatted,
		Wifi:              wifiName != "" || wifiPassword != "",
		WifiName:          wifiName,
		WifiPassword:      wifiPassword,
	}
	return p, nil
}

// optionalCoordinate treats nil and blank input as "not provided" but, unlike
// boundedFloat, rejects input that is present yet non-numeric.
func optionalCoordinate(v any, field string) (*float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
	}
	f, ok := asFloat(v)
	if !ok {
		return nil, failf("%s must be a number", field)
	}
	return &f, nil
}

func stringList(v any) []string {
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		if s := trimmedString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
