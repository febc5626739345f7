package justwatch

// GraphQLRequest is the JSON body shape for a JustWatch GraphQL POST request.
type GraphQLRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

// OfferPackage describes the platform an offer is available on.
// Icon is always a fully qualified URL even though the API returns a
// relative path.
type OfferPackage struct {
	ID            string
	PackageID     int
	Name          string
	TechnicalName string
	Icon          string
}

// Offer is a single streaming offer for a title. One platform can have
// multiple offers for the same title (renting, buying, etc.).
//
// MonetizationType and PresentationType are transmitted as opaque strings and
// are not re-validated. Pointer fields are nil when the API omitted the
// value; the language and technology lists pass through as returned, so a nil
// slice means the field was absent.
type Offer struct {
	ID                         string
	MonetizationType           string
	PresentationType           string
	PriceString                *string
	PriceValue                 *float64
	PriceCurrency              string
	LastChangeRetailPriceValue *float64
	Type                       string
	Package                    OfferPackage
	URL                        string
	ElementCount               int
	AvailableTo                *string
	DeeplinkRoku               *string
	SubtitleLanguages          []string
	VideoTechnology            []string
	AudioTechnology            []string
	AudioLanguages             []string
}

// MediaEntry is a single parsed title with its metadata and offers.
// Each parse produces fresh, independent records; entries own their offers
// and every offer owns exactly one package.
type MediaEntry struct {
	EntryID          string
	ObjectID         int
	ObjectType       string
	Title            string
	URL              string
	ReleaseYear      int
	ReleaseDate      string
	RuntimeMinutes   int
	ShortDescription string
	Genres           []string
	IMDBID           *string
	Poster           *string
	Backdrops        []string
	Offers           []Offer
}

// IsMovie reports whether the entry is a movie.
func (e *MediaEntry) IsMovie() bool {
	return e.ObjectType == "MOVIE"
}

// IsShow reports whether the entry is a show.
func (e *MediaEntry) IsShow() bool {
	return e.ObjectType == "SHOW"
}
