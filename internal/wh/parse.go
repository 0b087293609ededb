package wh

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrMissingData reports that the primary payload container was absent
// from a scraped document. It is fatal to that one parse call only;
// deeper absences degrade to empty values instead.
var ErrMissingData = errors.New("payload container missing")

// euroPrinter formats synthesized price labels the way willhaben
// renders them: comma decimals, dot grouping.
var euroPrinter = message.NewPrinter(language.German)

// ParseSearchDocument converts a raw __NEXT_DATA__ JSON document into a
// typed SearchResult. It is pure and performs no I/O. A document
// without props.pageProps.searchResult is a hard error; anything
// missing below that degrades to empty lists and defaults.
func ParseSearchDocument(doc []byte) (SearchResult, error) {
	var data nextData
	if err := json.Unmarshal(doc, &data); err != nil {
		return SearchResult{}, fmt.Errorf("decode search document: %w", err)
	}

	sr := data.Props.PageProps.SearchResult
	if sr == nil {
		return SearchResult{}, fmt.Errorf("searchResult: %w", ErrMissingData)
	}

	ads := sr.AdvertSummaryList.AdvertSummary
	items := make([]Listing, 0, len(ads))
	for _, ad := range ads {
		items = append(items, parseListing(ad))
	}

	total := sr.RowsFound
	if total == 0 {
		total = len(ads)
	}

	categories := extractCategories(sr.NavigatorGroups)
	if len(categories) == 0 {
		for _, s := range data.Props.PageProps.CategorySuggestions {
			categories = append(categories, CategorySuggestion{
				ID:    parseID(s.ID),
				Name:  s.Name,
				Count: s.Count,
			})
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Count > categories[j].Count
	})

	return SearchResult{Items: items, TotalFound: total, Categories: categories}, nil
}

// ParseDetailDocument converts a listing page's __NEXT_DATA__ document
// into a ListingDetail.
func ParseDetailDocument(doc []byte) (ListingDetail, error) {
	var data nextData
	if err := json.Unmarshal(doc, &data); err != nil {
		return ListingDetail{}, fmt.Errorf("decode detail document: %w", err)
	}

	ad := data.Props.PageProps.AdvertDetails
	if ad == nil {
		return ListingDetail{}, fmt.Errorf("advertDetails: %w", ErrMissingData)
	}

	attrs := parseAttributes(ad.Attributes)
	images := make([]string, 0, len(ad.Images))
	for _, img := range ad.Images {
		if img.MainImageURL != "" {
			images = append(images, img.MainImageURL)
		}
	}

	return ListingDetail{
		Listing:         parseListing(*ad),
		FullDescription: ad.Body,
		Images:          images,
		Attributes:      attrs,
		Phone:           firstValue(attrs, "PHONE"),
	}, nil
}

// ParseProfileDocument extracts the logged-in user's profile from the
// homepage document. An absent profile means the session is anonymous
// and is not an error.
func ParseProfileDocument(doc []byte) (*Profile, error) {
	var data nextData
	if err := json.Unmarshal(doc, &data); err != nil {
		return nil, fmt.Errorf("decode profile document: %w", err)
	}

	raw := data.Props.PageProps.ProfileData
	if raw == nil {
		return nil, nil
	}

	name := strings.TrimSpace(raw.FirstName + " " + raw.LastName)
	if name == "" {
		name = raw.DisplayName
	}
	if name == "" {
		name = "User"
	}

	id := raw.UUID
	if id == "" {
		id = raw.LoginID.String()
	}

	return &Profile{
		ID:          id,
		Name:        name,
		Email:       raw.EmailAddress,
		PostCode:    raw.AddressPostcode,
		MemberSince: raw.Created,
	}, nil
}

func parseListing(ad rawAdvert) Listing {
	attrs := parseAttributes(ad.Attributes)

	var price *float64
	priceText := firstValue(attrs, "PRICE_FOR_DISPLAY")

	amount := firstValue(attrs, "PRICE/AMOUNT")
	if amount == "" {
		amount = firstValue(attrs, "PRICE")
	}
	if amount != "" {
		if v, err := strconv.ParseFloat(amount, 64); err == nil {
			price = &v
			if priceText == "" {
				priceText = formatEuro(v)
			}
		}
	}

	var locationParts []string
	locationParts = append(locationParts, attrs["POSTCODE"]...)
	locationParts = append(locationParts, attrs["LOCATION"]...)

	imageURL := ad.MainImageURL
	if imageURL == "" && ad.AdvertImageList != nil && len(ad.AdvertImageList.AdvertImage) > 0 {
		imageURL = ad.AdvertImageList.AdvertImage[0].MainImageURL
	}

	_, paylivery := attrs["PAYLIVERY"]

	id := parseID(ad.ID)
	return Listing{
		ID:          id,
		Title:       parseTitle(ad.Description),
		Price:       price,
		PriceText:   priceText,
		Location:    strings.Join(locationParts, ", "),
		Description: ad.Body,
		URL:         BaseURL + "/iad/object?adId=" + id,
		ImageURL:    imageURL,
		SellerID:    firstValue(attrs, "SELLER_ID"),
		SellerName:  firstValue(attrs, "SELLER_NAME"),
		Condition:   firstValue(attrs, "CONDITION"),
		Paylivery:   paylivery,
	}
}

// parseAttributes flattens an ad's attribute payload, which arrives
// either as a bare array or wrapped in {"attribute": [...]}, into a
// name-to-values map.
func parseAttributes(raw json.RawMessage) map[string][]string {
	attrs := make(map[string][]string)
	if len(raw) == 0 {
		return attrs
	}

	var list []rawAttribute
	if err := json.Unmarshal(raw, &list); err != nil {
		var wrapped struct {
			Attribute []rawAttribute `json:"attribute"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return attrs
		}
		list = wrapped.Attribute
	}

	for _, a := range list {
		if a.Name == "" {
			continue
		}
		values := a.Values
		if values == nil {
			values = []string{}
		}
		attrs[a.Name] = values
	}
	return attrs
}

// parseID normalizes an id field that arrives as either a JSON string
// or a bare number. Ids are opaque tokens and carried verbatim.
func parseID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// parseTitle handles the two shapes the description field arrives in:
// a plain string on search summaries, {"header": ...} on some detail
// payloads.
func parseTitle(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "No Title"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Header string `json:"header"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Header != "" {
		return obj.Header
	}
	return "No Title"
}

// isCategoryNode is the predicate selecting the category facet group
// out of the navigator tree. The comparisons are case-sensitive and
// checked in this exact order.
func isCategoryNode(n navigatorNode) bool {
	return n.ID == "attribute_tree" ||
		n.Name == "ATTRIBUTE_TREE" ||
		n.ID == "category" ||
		n.Label == "Kategorie"
}

// extractCategories walks the navigator groups for the category facet:
// first a scan over the top-level groups, then one level deeper through
// each group's navigatorList, stopping at the first match.
func extractCategories(groups []navigatorNode) []CategorySuggestion {
	var node *navigatorNode
	for i := range groups {
		if isCategoryNode(groups[i]) {
			node = &groups[i]
			break
		}
	}
	if node == nil {
	outer:
		for i := range groups {
			for j := range groups[i].NavigatorList {
				if isCategoryNode(groups[i].NavigatorList[j]) {
					node = &groups[i].NavigatorList[j]
					break outer
				}
			}
		}
	}
	if node == nil {
		return nil
	}

	if node.Values != nil {
		categories := make([]CategorySuggestion, 0, len(node.Values))
		for _, v := range node.Values {
			categories = append(categories, CategorySuggestion{
				ID:    v.Value,
				Name:  v.Label,
				Count: v.Hits,
			})
		}
		return categories
	}

	if len(node.GroupedPossibleValues) > 0 {
		possible := node.GroupedPossibleValues[0].PossibleValues
		categories := make([]CategorySuggestion, 0, len(possible))
		for _, v := range possible {
			id := ""
			for _, p := range v.URLParams {
				if p.URLParameterName == "ATTRIBUTE_TREE" {
					id = p.Value
					break
				}
			}
			if id == "" {
				continue
			}
			categories = append(categories, CategorySuggestion{
				ID:    id,
				Name:  v.Label,
				Count: v.Hits,
			})
		}
		return categories
	}

	return nil
}

func firstValue(attrs map[string][]string, name string) string {
	if values := attrs[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func formatEuro(amount float64) string {
	return euroPrinter.Sprintf("€ %v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
