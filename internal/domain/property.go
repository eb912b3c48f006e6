package domain

// PropertyType is the closed set of listing types the back office accepts.
type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeHouse     PropertyType = "house"
	TypeStudio    PropertyType = "studio"
	TypeVilla     PropertyType = "villa"
	TypeLoft      PropertyType = "loft"
	TypeChalet    PropertyType = "chalet"
	TypeBungalow  PropertyType = "bungalow"
	TypeRoom      PropertyType = "room"
)

// PropertyTypes lists every accepted type, in display order.
var PropertyTypes = []PropertyType{
	TypeApartment, TypeHouse, TypeStudio, TypeVilla,
	TypeLoft, TypeChalet, TypeBungalow, TypeRoom,
}

// ParsePropertyType reports whether s names a known type.
func ParsePropertyType(s string) (PropertyType, bool) {
	for _, t := range PropertyTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

type DepositType string

const (
	DepositFixed DepositType = "fixed"
	DepositRange DepositType = "range"
)

type DepositMethod string

const (
	MethodEmpreinte DepositMethod = "empreinte" // card imprint, the default
	MethodVirement  DepositMethod = "virement"  // bank transfer
)

type Capacity struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type General struct {
	Name             string       `json:"name"`
	Type             PropertyType `json:"type"`
	ShortDescription string       `json:"shortDescription"`
	LongDescription  string       `json:"longDescription"`
	WifiName         string       `json:"wifiName"`
	WifiPassword     string       `json:"wifiPassword"`
	Capacity         Capacity     `json:"capacity"`
	Bedrooms         int          `json:"bedrooms"`
	Beds             int          `json:"beds"`
	Bathrooms        int          `json:"bathrooms"`
	Surface          *float64     `json:"surface"`
}

type Address struct {
	StreetNumber string   `json:"streetNumber"`
	Street       string   `json:"street"`
	Complement   string   `json:"complement"`
	PostalCode   string   `json:"postalCode"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Formatted    string   `json:"formatted"`
}

type OnlinePresence struct {
	AirbnbURL  string `json:"airbnbUrl"`
	BookingURL string `json:"bookingUrl"`
	Slug       string `json:"slug"`
}

type MediaItem struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Alt          string `json:"alt"`
	Credit       string `json:"credit"`
	IsHero       bool   `json:"isHero"`
	IsCover      bool   `json:"isCover"`
	Hidden       bool   `json:"hidden"`
	Order        int    `json:"order"`
}

type MediaCategory struct {
	ID               string      `json:"id"`
	Key              string      `json:"key"`
	Label            string      `json:"label"`
	Title            string      `json:"title"`
	ShortDescription string      `json:"shortDescription"`
	IsCover          bool        `json:"isCover"`
	Order            int         `json:"order"`
	VideoURL         string      `json:"videoUrl"`
	Medias           []MediaItem `json:"medias"`
}

// FlattenedMediaItem is a MediaItem annotated with its owning category,
// produced once across all categories in category-then-item order.
type FlattenedMediaItem struct {
	MediaItem
	CategoryID string `json:"categoryId"`
}

type Medias struct {
	Categories []MediaCategory      `json:"categories"`
	Flattened  []FlattenedMediaItem `json:"flattened"`
}

// Deposit is a tagged union: fixed carries Amount, range carries Min/Max.
// The unused bound fields stay nil.
type Deposit struct {
	Type   DepositType   `json:"type"`
	Amount *float64      `json:"amount"`
	Min    *float64      `json:"min"`
	Max    *float64      `json:"max"`
	Method DepositMethod `json:"method"`
}

type CityTax struct {
	Enabled        bool    `json:"enabled"`
	AmountPerNight float64 `json:"amountPerNight"`
}

type Operations struct {
	Deposit        Deposit  `json:"deposit"`
	CheckInTime    string   `json:"checkInTime"`
	CheckOutTime   string   `json:"checkOutTime"`
	SmokingAllowed bool     `json:"smokingAllowed"`
	PetsAllowed    bool     `json:"petsAllowed"`
	Equipments     []string `json:"equipments"`
	CityTax        CityTax  `json:"cityTax"`
}

type SEO struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// Property is the canonical representation of a listing. The flat fields at
// the bottom mirror values already present in the nested sub-records; older
// consumers read those instead of the nested shape, and the two must never
// disagree.
type Property struct {
	ID string `json:"id,omitempty"`

	General        General        `json:"general"`
	Address        Address        `json:"address"`
	OnlinePresence OnlinePresence `json:"onlinePresence"`
	Medias         Medias         `json:"medias"`
	Operations     Operations     `json:"operations"`
	SEO            SEO            `json:"seo"`

	Name              string       `json:"name"`
	Type              PropertyType `json:"type"`
	Capacity          int          `json:"capacity"`
	Bedrooms          int          `json:"bedrooms"`
	Beds              int          `json:"beds"`
	Bathrooms         int          `json:"bathrooms"`
	Surface           *float64     `json:"surface"`
	ShortDescription  string       `json:"shortDescription"`
	Description       string       `json:"description"`
	MaxGuests         int          `json:"maxGuests"`
	Amenities         []string     `json:"amenities"`
	AirbnbURL         string       `json:"airbnbUrl"`
	BookingURL        string       `json:"bookingUrl"`
	Slug              string       `json:"slug"`
	ProfilePhoto      string       `json:"profilePhoto"`
	CoverPhoto        string       `json:"coverPhoto"`
	DescriptionPhotos []string     `json:"descriptionPhotos"`
	AddressLabel      string       `json:"addressLabel"`
	Wifi              bool         `json:"wifi"`
	WifiName          string       `json:"wifiName"`
	WifiPassword      string       `json:"wifiPassword"`
}
