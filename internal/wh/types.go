package wh

import "encoding/json"

// BaseURL is the willhaben site root all listing URLs hang off.
const BaseURL = "https://www.willhaben.at"

// Listing is a single classified ad as it appears in search results.
// Instances are immutable once parsed; a fresh search produces new
// values even for ads already seen.
type Listing struct {
	ID          string
	Title       string
	Price       *float64
	PriceText   string
	Location    string
	Description string
	URL         string
	ImageURL    string
	SellerID    string
	SellerName  string
	Condition   string
	Paylivery   bool
}

// ListingDetail extends Listing with the fields only present on an
// ad's own page.
type ListingDetail struct {
	Listing
	FullDescription string
	Images          []string
	Attributes      map[string][]string
	Phone           string
}

// CategorySuggestion is one entry of the category refinement tree.
// ID is the ATTRIBUTE_TREE facet value accepted by a follow-up search;
// Count is a display/ranking hint only.
type CategorySuggestion struct {
	ID    string
	Name  string
	Count int
}

// SearchResult is the typed outcome of one search call. It is replaced
// wholesale on every search or pagination request, never merged.
type SearchResult struct {
	Items      []Listing
	TotalFound int
	Categories []CategorySuggestion
}

// Profile holds the logged-in user data scraped from the homepage.
type Profile struct {
	ID          string
	Name        string
	Email       string
	PostCode    string
	MemberSince string
}

// Raw payload shapes mirroring the JSON embedded in willhaben's
// __NEXT_DATA__ script tag. Fields we never read are omitted; unknown
// fields are ignored by encoding/json.

type nextData struct {
	Props struct {
		PageProps pageProps `json:"pageProps"`
	} `json:"props"`
}

type pageProps struct {
	SearchResult        *rawSearchResult `json:"searchResult"`
	CategorySuggestions []rawSuggestion  `json:"categorySuggestions"`
	AdvertDetails       *rawAdvert       `json:"advertDetails"`
	ProfileData         *rawProfile      `json:"profileData"`
}

type rawSearchResult struct {
	RowsFound         int             `json:"rowsFound"`
	AdvertSummaryList rawAdvertList   `json:"advertSummaryList"`
	NavigatorGroups   []navigatorNode `json:"navigatorGroups"`
}

type rawAdvertList struct {
	AdvertSummary []rawAdvert `json:"advertSummary"`
}

type rawAdvert struct {
	ID              json.RawMessage `json:"id"`
	Description     json.RawMessage `json:"description"`
	Body            string          `json:"body"`
	Attributes      json.RawMessage `json:"attributes"`
	MainImageURL    string          `json:"mainImageUrl"`
	AdvertImageList *rawImageList   `json:"advertImageList"`
	Images          []rawImage      `json:"images"`
}

type rawImageList struct {
	AdvertImage []rawImage `json:"advertImage"`
}

type rawImage struct {
	MainImageURL string `json:"mainImageUrl"`
}

type rawAttribute struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// navigatorNode is one node of the loosely-typed navigator tree. The
// same shape appears both at the top level of navigatorGroups and one
// level down inside navigatorList, so the category search recurses
// over a single type.
type navigatorNode struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Label                 string          `json:"label"`
	NavigatorList         []navigatorNode `json:"navigatorList"`
	Values                []rawNavValue   `json:"values"`
	GroupedPossibleValues []rawGrouped    `json:"groupedPossibleValues"`
}

type rawNavValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Hits  int    `json:"hits"`
}

type rawGrouped struct {
	PossibleValues []rawPossibleValue `json:"possibleValues"`
}

type rawPossibleValue struct {
	Label     string        `json:"label"`
	Hits      int           `json:"hits"`
	URLParams []rawURLParam `json:"urlParamRepresentationForValue"`
}

type rawURLParam struct {
	URLParameterName string `json:"urlParameterName"`
	Value            string `json:"value"`
}

type rawSuggestion struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Count int             `json:"count"`
}

type rawProfile struct {
	UUID            string      `json:"uuid"`
	LoginID         json.Number `json:"loginId"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	DisplayName     string      `json:"displayName"`
	EmailAddress    string      `json:"emailAddress"`
	AddressPostcode string      `json:"addressPostcode"`
	Created         string      `json:"created"`
}
