package inventory

// resolver.go maps an export's human-chosen headers onto SchemaFields.
//
// Headers are compared in normalized form: lowercase with every character
// outside [a-z0-9] removed, so "On-Time Delivery %" becomes "ontimedelivery".
// Each field owns one or more Matchers tried in priority order; within a
// matcher, the first header in the record's original order wins.

import "strings"

// Synonyms maps each field to the normalized fragments that identify it.
// A header matches when it contains a fragment; see NewSynonymResolver for
// short fragments and per-field exclusions.
type Synonyms map[SchemaField][]string

// defaultSynonyms is the fragment table used by DefaultResolver.
// Fragments are listed roughly from most to least specific.
var defaultSynonyms = Synonyms{
	FieldIdentifier:         {"sku", "itemnumber", "itemcode", "itemid", "partnumber", "material", "productcode", "product", "item"},
	FieldLocation:           {"location", "warehouse", "site", "plant", "branch", "store"},
	FieldDemandType:         {"demandtype", "demandpattern", "demandclass", "demandcategory"},
	FieldOnHandCoverageBase: {"ohcoverage", "onhandcoverage", "stockcoverage", "basecoverage", "ohmos", "onhandmos"},
	FieldInTransitCoverage:  {"intransitcoverage", "transitcoverage", "intransitmos", "pipelinecoverage", "gitcoverage"},
	FieldOtherCoverage:      {"othercoverage", "othermos", "misccoverage"},
	FieldTotalCoverage:      {"totalcoverage", "totalmos", "monthsofsupply"},
	FieldForecastAccuracy:   {"forecastaccuracy", "fcstaccuracy", "fcacc", "accuracy"},
	FieldOnHand:             {"onhandqty", "onhandquantity", "qtyonhand", "stockonhand", "soh", "onhand"},
	FieldTrailingDemand:     {"trailingdemand", "l3mactual", "l3msales", "last3months", "actualdemand", "actualsales", "consumption", "sales"},
	FieldSupplierName:       {"suppliername", "supplier", "vendorname", "vendor"},
	FieldLeadTimeDays:       {"leadtimedays", "leadtime", "ltdays", "replenishmentdays"},
	FieldOnTimeDeliveryRate: {"ontimedelivery", "otdrate", "otd", "otif", "ontimerate", "deliveryperformance"},
}

// strictAccuracyFragments lists the fragment sets for the strict
// forecast-accuracy match, abbreviated form first. A header matches a set
// when it contains every fragment in it. Plain "accuracy" collides with
// unrelated forecast-quality columns.
var strictAccuracyFragments = [][]string{
	{"actvsfcst", "acc"},
	{"actual", "forecast", "acc"},
}

// synonymExclusions rejects headers for a field even when one of its
// fragments matches. "On Hand Coverage" is a coverage column, not a quantity.
var synonymExclusions = map[SchemaField][]string{
	FieldOnHand: {"coverage", "mos"},
}

// shortFragmentLen is the longest fragment that must sit at the start or end
// of a header to match. Short codes like "otd" occur inside unrelated words
// ("Lot Date").
const shortFragmentLen = 3

// DefaultSynonyms returns a copy of the built-in fragment table.
func DefaultSynonyms() Synonyms {
	out := make(Synonyms, len(defaultSynonyms))
	for f, frags := range defaultSynonyms {
		out[f] = append([]string(nil), frags...)
	}
	return out
}

// HeaderPredicate tests one normalized header.
type HeaderPredicate func(normalized string) bool

// Matcher pairs a field with a predicate. A field may have several
// matchers; earlier ones take priority.
type Matcher struct {
	Field SchemaField
	Match HeaderPredicate
}

// ContainsAny matches headers containing at least one fragment.
func ContainsAny(fragments ...string) HeaderPredicate {
	return func(h string) bool {
		for _, frag := range fragments {
			if frag != "" && strings.Contains(h, frag) {
				return true
			}
		}
		return false
	}
}

// AtEdge matches headers that begin or end with one of the fragments.
func AtEdge(fragments ...string) HeaderPredicate {
	return func(h string) bool {
		for _, frag := range fragments {
			if frag != "" && (strings.HasPrefix(h, frag) || strings.HasSuffix(h, frag)) {
				return true
			}
		}
		return false
	}
}

// Except wraps p so that headers containing any of the excluded fragments
// never match.
func Except(p HeaderPredicate, excluded ...string) HeaderPredicate {
	if len(excluded) == 0 {
		return p
	}
	reject := ContainsAny(excluded...)
	return func(h string) bool {
		return !reject(h) && p(h)
	}
}

// ContainsAll matches headers containing every fragment.
func ContainsAll(fragments ...string) HeaderPredicate {
	return func(h string) bool {
		if len(fragments) == 0 {
			return false
		}
		for _, frag := range fragments {
			if !strings.Contains(h, frag) {
				return false
			}
		}
		return true
	}
}

// NormalizeHeader lowercases h and drops everything but ASCII letters and digits.
func NormalizeHeader(h string) string {
	var b strings.Builder
	b.Grow(len(h))
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolver determines the ColumnMap of a dataset. It is immutable and safe
// for concurrent use.
type Resolver struct {
	matchers []Matcher
}

// NewResolver builds a resolver from an explicit priority list.
func NewResolver(matchers []Matcher) *Resolver {
	m := make([]Matcher, len(matchers))
	copy(m, matchers)
	return &Resolver{matchers: m}
}

// NewSynonymResolver builds the priority list for a synonym table: the
// strict forecast-accuracy matchers first, then one matcher per field in
// SchemaFields order. Fragments up to shortFragmentLen characters only match
// at a header's edges; longer ones match anywhere.
func NewSynonymResolver(syn Synonyms) *Resolver {
	var matchers []Matcher
	for _, frags := range strictAccuracyFragments {
		matchers = append(matchers, Matcher{Field: FieldForecastAccuracy, Match: ContainsAll(frags...)})
	}
	for _, f := range SchemaFields {
		if frags := syn[f]; len(frags) > 0 {
			matchers = append(matchers, Matcher{Field: f, Match: Except(fragmentPredicate(frags), synonymExclusions[f]...)})
		}
	}
	return NewResolver(matchers)
}

func fragmentPredicate(frags []string) HeaderPredicate {
	var short, long []string
	for _, frag := range frags {
		if len(frag) <= shortFragmentLen {
			short = append(short, frag)
		} else {
			long = append(long, frag)
		}
	}
	edge, anywhere := AtEdge(short...), ContainsAny(long...)
	return func(h string) bool {
		return anywhere(h) || edge(h)
	}
}

// DefaultResolver uses the built-in synonym table.
func DefaultResolver() *Resolver {
	return NewSynonymResolver(defaultSynonyms)
}

// Resolve computes the ColumnMap from one sample record, normally the
// first row of the dataset. Column identity is assumed not to vary between
// rows, so the result is reused for every record.
func (r *Resolver) Resolve(sample RawRecord) ColumnMap {
	headers := sample.Headers()
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	cols := make(ColumnMap)
	for _, m := range r.matchers {
		if cols.Resolved(m.Field) {
			continue
		}
		for i, h := range normalized {
			if m.Match(h) {
				cols[m.Field] = headers[i]
				break
			}
		}
	}
	return cols
}
