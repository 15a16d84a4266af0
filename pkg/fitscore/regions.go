package fitscore

import (
	"regexp"
	"strings"
)

// Region tags are coarse US geographic groupings used for preference matching.
// The West Coast split (CA/NV/OR/WA/AK/AZ vs the interior West) follows the
// lane taxonomy drivers actually use on the load board, not the census one.
const (
	RegionWestCoast = "West Coast"
	RegionWest      = "West"
	RegionMidwest   = "Midwest"
	RegionSouth     = "South"
	RegionNortheast = "Northeast"
)

// stateRegion maps every two-letter state code (50 states + DC) to its
// region tag.
var stateRegion = map[string]string{
	"CA": RegionWestCoast, "NV": RegionWestCoast, "OR": RegionWestCoast,
	"WA": RegionWestCoast, "AK": RegionWestCoast, "AZ": RegionWestCoast,

	"CO": RegionWest, "HI": RegionWest, "ID": RegionWest, "MT": RegionWest,
	"NM": RegionWest, "UT": RegionWest, "WY": RegionWest,

	"ND": RegionMidwest, "SD": RegionMidwest, "NE": RegionMidwest,
	"KS": RegionMidwest, "MN": RegionMidwest, "IA": RegionMidwest,
	"MO": RegionMidwest, "WI": RegionMidwest, "IL": RegionMidwest,
	"IN": RegionMidwest, "MI": RegionMidwest, "OH": RegionMidwest,

	"TX": RegionSouth, "OK": RegionSouth, "AR": RegionSouth, "LA": RegionSouth,
	"KY": RegionSouth, "TN": RegionSouth, "MS": RegionSouth, "AL": RegionSouth,
	"WV": RegionSouth, "MD": RegionSouth, "DE": RegionSouth, "DC": RegionSouth,
	"VA": RegionSouth, "NC": RegionSouth, "SC": RegionSouth, "GA": RegionSouth,
	"FL": RegionSouth,

	"PA": RegionNortheast, "NY": RegionNortheast, "NJ": RegionNortheast,
	"CT": RegionNortheast, "RI": RegionNortheast, "MA": RegionNortheast,
	"VT": RegionNortheast, "NH": RegionNortheast, "ME": RegionNortheast,
}

// stateCodePattern matches standalone two-letter uppercase tokens inside
// free-text locations like "Fresno, CA" or "CA - Central Valley".
var stateCodePattern = regexp.MustCompile(`\b[A-Z]{2}\b`)

// RegionForState returns the region tag for a two-letter state code, or ""
// when the code is unknown. Lookup is case-insensitive.
func RegionForState(code string) string {
	return stateRegion[strings.ToUpper(strings.TrimSpace(code))]
}

// RegionTagsForLoad derives the load's region tags from its origin and
// destination states. Duplicates collapse; order follows origin then dest.
func RegionTagsForLoad(load Load) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, code := range []string{load.OriginState, load.DestState} {
		tag := RegionForState(code)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// homeBaseState scans a free-text home base for a recognizable state code.
// Only uppercase tokens count; "Fresno, CA" yields CA while "Laredo" yields
// nothing. Returns "" when nothing in the text is a known state.
func homeBaseState(homeBase string) string {
	for _, token := range stateCodePattern.FindAllString(homeBase, -1) {
		if _, ok := stateRegion[token]; ok {
			return token
		}
	}
	return ""
}
