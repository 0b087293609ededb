// Package wh implements the willhaben marketplace client: URL
// construction for keyword and facet searches, and the parsers that
// turn the site's embedded __NEXT_DATA__ JSON into typed listings,
// category suggestions, and profile data.
//
// The parsers are pure functions over raw documents so the whole
// extraction logic tests without network access. The category
// extraction follows an ordered fallback chain over the loosely-typed
// navigator tree; see extractCategories for the exact order, which the
// site's markup variants depend on.
package wh
