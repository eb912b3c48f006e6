package normalize_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/devillers/checkin-sub000/internal/domain"
	"github.com/devillers/checkin-sub000/internal/normalize"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func validSubmission() domain.Submission {
	return domain.Submission{
		General: map[string]any{
			"name":             "Loft Belleville",
			"shortDescription": "Cosy loft",
			"capacity":         map[string]any{"adults": 2.0},
		},
		Address: map[string]any{
			"street":     "Rue de Belleville",
			"postalCode": "75020",
			"city":       "Paris",
		},
		OnlinePresence: map[string]any{"slug": "loft-belleville"},
	}
}

func TestNormalize_EndToEnd(t *testing.T) {
	p, err := normalize.Normalize(validSubmission(), &seqIDs{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p.MaxGuests != 2 {
		t.Fatalf("maxGuests: %d", p.MaxGuests)
	}
	if p.AddressLabel != "Rue de Belleville, 75020 Paris, France" {
		t.Fatalf("addressLabel: %q", p.AddressLabel)
	}
	if p.Operations.Deposit.Method != domain.MethodEmpreinte {
		t.Fatalf("deposit method: %s", p.Operations.Deposit.Method)
	}
	if p.Type != domain.TypeApartment {
		t.Fatalf("default type: %s", p.Type)
	}
	if p.General.Capacity.Adults != 2 || p.General.Capacity.Children != 0 {
		t.Fatalf("capacity: %+v", p.General.Capacity)
	}
}

func TestNormalize_FlatMirrorsAgreeWithNested(t *testing.T) {
	sub := validSubmission()
	sub.General["longDescription"] = "A long story."
	sub.General["bedrooms"] = 2.0
	sub.General["wifiName"] = "loft-net"
	sub.Operations = map[string]any{"equipments": []any{"washer", " dryer "}}

	p, err := normalize.Normalize(sub, &seqIDs{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p.Name != p.General.Name || p.Type != p.General.Type {
		t.Fatal("name/type mirrors disagree")
	}
	if p.ShortDescription != p.General.ShortDescription || p.Description != p.General.LongDescription {
		t.Fatal("description mirrors disagree")
	}
	if p.Bedrooms != p.General.Bedrooms || p.Beds != p.General.Beds || p.Bathrooms != p.General.Bathrooms {
		t.Fatal("room mirrors disagree")
	}
	if p.AddressLabel != p.Address.Formatted {
		t.Fatal("address mirrors disagree")
	}
	if p.Slug != p.OnlinePresence.Slug {
		t.Fatal("slug mirror disagrees")
	}
	if !reflect.DeepEqual(p.Amenities, p.Operations.Equipments) {
		t.Fatal("amenities mirror disagrees")
	}
	if p.Amenities[1] != "dryer" {
		t.Fatalf("equipments not trimmed: %v", p.Amenities)
	}
	if !p.Wifi || p.WifiName != p.General.WifiName {
		t.Fatal("wifi mirror disagrees")
	}
}

func TestNormalize_BedsDefaultsToResolvedBedrooms(t *testing.T) {
	sub := validSubmission()
	sub.General["bedrooms"] = "3"
	p, err := normalize.Normalize(sub, &seqIDs{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p.Bedrooms != 3 || p.Beds != 3 {
		t.Fatalf("bedrooms=%d beds=%d", p.Bedrooms, p.Beds)
	}
}

func TestNormalize_FailFastOrder(t *testing.T) {
	// name and postal code both invalid: the name message must win
	sub := validSubmission()
	sub.General["name"] = "  "
	sub.Address["postalCode"] = "7500"
	_, err := normalize.Normalize(sub, &seqIDs{})
	if err == nil || !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected name failure first, got %v", err)
	}
}

func TestNormalize_Failures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*domain.Submission)
		wantMsg string
	}{
		{"unknown type", func(s *domain.Submission) { s.General["type"] = "castle" }, "castle"},
		{"short description missing", func(s *domain.Submission) { delete(s.General, "shortDescription") }, "short description"},
		{"short description too long", func(s *domain.Submission) { s.General["shortDescription"] = strings.Repeat("x", 161) }, "160"},
		{"postal 4 digits", func(s *domain.Submission) { s.Address["postalCode"] = "7500" }, "5 digits"},
		{"postal letter", func(s *domain.Submission) { s.Address["postalCode"] = "7500A" }, "5 digits"},
		{"street missing", func(s *domain.Submission) { delete(s.Address, "street") }, "street"},
		{"city missing", func(s *domain.Submission) { s.Address["city"] = "" }, "city"},
		{"bad latitude", func(s *domain.Submission) { s.Address["latitude"] = "north" }, "latitude"},
		{"bad slug", func(s *domain.Submission) { s.OnlinePresence["slug"] = "Loft!" }, "slug"},
		{"bad airbnb link", func(s *domain.Submission) { s.OnlinePresence["airbnbUrl"] = "https://example.com/r/1" }, "Airbnb"},
		{"meta title too long", func(s *domain.Submission) {
			s.SEO = map[string]any{"metaTitle": strings.Repeat("x", 71)}
		}, "70"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sub := validSubmission()
			c.mutate(&sub)
			_, err := normalize.Normalize(sub, &seqIDs{})
			if err == nil {
				t.Fatal("expected failure")
			}
			if !normalize.IsValidation(err) {
				t.Fatalf("not a validation error: %v", err)
			}
			if !strings.Contains(err.Error(), c.wantMsg) {
				t.Fatalf("message %q does not mention %q", err.Error(), c.wantMsg)
			}
		})
	}
}

func TestNormalize_ShortDescriptionBoundary(t *testing.T) {
	sub := validSubmission()
	sub.General["shortDescription"] = strings.Repeat("x", 160)
	if _, err := normalize.Normalize(sub, &seqIDs{}); err != nil {
		t.Fatalf("160 chars must pass: %v", err)
	}
}

func TestNormalize_MediaAltFailureNamesCategory(t *testing.T) {
	sub := validSubmission()
	sub.Medias = map[string]any{"categories": []any{
		map[string]any{
			"label":  "Salon",
			"medias": []any{map[string]any{"url": "https://cdn.example.com/s.jpg"}},
		},
	}}
	_, err := normalize.Normalize(sub, &seqIDs{})
	if err == nil || !strings.Contains(err.Error(), "Salon") {
		t.Fatalf("expected failure naming Salon, got %v", err)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	sub := validSubmission()
	sub.General["type"] = "loft"
	sub.General["bedrooms"] = 2.0
	sub.General["surface"] = "42,5"
	sub.Address["streetNumber"] = "12"
	sub.Operations = map[string]any{
		"deposit":    map[string]any{"type": "range", "min": 50.0, "max": 100.0},
		"equipments": []any{"washer"},
	}
	sub.Medias = map[string]any{"categories": []any{
		map[string]any{
			"label": "Salon",
			"medias": []any{
				map[string]any{"url": "https://cdn.example.com/s.jpg", "alt": "sofa", "isHero": true},
			},
		},
	}}

	first, err := normalize.Normalize(sub, &seqIDs{})
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	// feed the canonical output back through as a fresh submission
	raw, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again domain.Submission
	if err := json.Unmarshal(raw, &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := normalize.Normalize(again, &seqIDs{})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
