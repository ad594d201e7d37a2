package inventory

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ValueKind tells which variant a Value holds.
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindText
	KindNumber
)

// Value is one loosely-typed cell: absent, text, or a number.
// The zero Value is absent.
type Value struct {
	kind ValueKind
	text string
	num  float64
}

// Text returns a text cell.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Absent returns a missing cell.
func Absent() Value {
	return Value{}
}

// Kind returns which variant the cell holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether the cell is missing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// String renders the cell as text. Numbers use the shortest exact form,
// absent cells render as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric payload and whether the cell is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// MarshalJSON writes text as a string, numbers as a number and absent
// cells as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// RawRecord is one decoded row: arbitrary headers in their original order,
// each mapped to a Value. It is immutable once built.
type RawRecord struct {
	headers []string
	cells   map[string]Value
}

// NewRawRecord builds a record. Headers keep the given order; cells for
// headers not listed are dropped. Both arguments are copied.
func NewRawRecord(headers []string, cells map[string]Value) RawRecord {
	h := make([]string, len(headers))
	copy(h, headers)

	c := make(map[string]Value, len(headers))
	for _, name := range h {
		if v, ok := cells[name]; ok {
			c[name] = v
		}
	}
	return RawRecord{headers: h, cells: c}
}

// Headers returns the record's headers in original key order.
func (r RawRecord) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// Get returns the cell under header. Missing headers yield an absent Value.
func (r RawRecord) Get(header string) Value {
	return r.cells[header]
}

// Len returns the number of headers.
func (r RawRecord) Len() int { return len(r.headers) }

// MarshalJSON writes the record as an object with keys in header order.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range r.headers {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(h)
		if err != nil {
			return nil, err
		}
		val, err := r.cells[h].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SchemaField is one logical column of the internal inventory schema.
type SchemaField string

const (
	FieldIdentifier         SchemaField = "identifier"
	FieldLocation           SchemaField = "location"
	FieldDemandType         SchemaField = "demandType"
	FieldOnHandCoverageBase SchemaField = "onHandCoverageBase"
	FieldInTransitCoverage  SchemaField = "inTransitCoverage"
	FieldOtherCoverage      SchemaField = "otherCoverage"
	FieldTotalCoverage      SchemaField = "totalCoverage"
	FieldForecastAccuracy   SchemaField = "forecastAccuracy"
	FieldOnHand             SchemaField = "onHand"
	FieldTrailingDemand     SchemaField = "trailingDemand"
	FieldSupplierName       SchemaField = "supplierName"
	FieldLeadTimeDays       SchemaField = "leadTimeDays"
	FieldOnTimeDeliveryRate SchemaField = "onTimeDeliveryRate"
)

// SchemaFields lists every field in resolution order.
var SchemaFields = []SchemaField{
	FieldIdentifier,
	FieldLocation,
	FieldDemandType,
	FieldOnHandCoverageBase,
	FieldInTransitCoverage,
	FieldOtherCoverage,
	FieldTotalCoverage,
	FieldForecastAccuracy,
	FieldOnHand,
	FieldTrailingDemand,
	FieldSupplierName,
	FieldLeadTimeDays,
	FieldOnTimeDeliveryRate,
}

// ColumnMap maps schema fields to the header resolved for one dataset.
// Unresolved fields have no entry.
type ColumnMap map[SchemaField]string

// Lookup returns the header for f and whether it was resolved.
func (m ColumnMap) Lookup(f SchemaField) (string, bool) {
	h, ok := m[f]
	return h, ok
}

// Resolved reports whether f has a header in this dataset.
func (m ColumnMap) Resolved(f SchemaField) bool {
	_, ok := m[f]
	return ok
}

// Unresolved lists the fields with no header, in SchemaFields order.
func (m ColumnMap) Unresolved() []SchemaField {
	var out []SchemaField
	for _, f := range SchemaFields {
		if !m.Resolved(f) {
			out = append(out, f)
		}
	}
	return out
}

// Placeholders for text fields that could not be resolved or were blank.
const (
	UnknownText     = "Unknown"
	UnknownSupplier = "N/A"
)

// InventoryItem is the canonical, normalized form of one export row.
// TotalCoverage is always the sum of the three coverage components; it is
// computed once by BuildItem and never set independently.
type InventoryItem struct {
	RowID              string    `json:"rowId"`
	RowIndex           int       `json:"rowIndex"`
	Identifier         string    `json:"identifier"`
	Location           string    `json:"location"`
	DemandType         string    `json:"demandType"`
	OnHandCoverageBase float64   `json:"onHandCoverageBase"`
	InTransitCoverage  float64   `json:"inTransitCoverage"`
	OtherCoverage      float64   `json:"otherCoverage"`
	TotalCoverage      float64   `json:"totalCoverage"`
	ForecastAccuracy   float64   `json:"forecastAccuracy"`
	OnHand             float64   `json:"onHand"`
	TrailingDemand     float64   `json:"trailingDemand"`
	SupplierName       string    `json:"supplierName"`
	LeadTimeDays       float64   `json:"leadTimeDays"`
	OnTimeDeliveryRate float64   `json:"onTimeDeliveryRate"`
	Raw                RawRecord `json:"raw"`
}

// RiskCategory is a classification bucket. An item may land in several.
type RiskCategory string

const (
	CategoryShortfall    RiskCategory = "Shortfall"
	CategoryOversupply   RiskCategory = "Oversupply"
	CategoryDeadStock    RiskCategory = "DeadStock"
	CategorySupplierRisk RiskCategory = "SupplierRisk"

	// CategoryHealthy is implicit: it never has a bucket of its own.
	CategoryHealthy RiskCategory = "Healthy"
)

// Categories lists the bucketed categories in rule order.
var Categories = []RiskCategory{
	CategoryShortfall,
	CategoryOversupply,
	CategoryDeadStock,
	CategorySupplierRisk,
}

// AnalysisResult is one bucket entry. An item matching two rules yields two
// results, each listing only the category of the bucket it sits in.
type AnalysisResult struct {
	Item       InventoryItem  `json:"item"`
	Categories []RiskCategory `json:"categories"`
}

// Summary holds the bucket sizes of one analysis.
type Summary struct {
	TotalItems   int `json:"totalItems"`
	Shortfall    int `json:"shortfall"`
	Oversupply   int `json:"oversupply"`
	DeadStock    int `json:"deadStock"`
	SupplierRisk int `json:"supplierRisk"`
}

// AggregatedAnalysis is the read-only outcome of analysing one dataset.
type AggregatedAnalysis struct {
	Shortfall    []AnalysisResult `json:"shortfall"`
	Oversupply   []AnalysisResult `json:"oversupply"`
	DeadStock    []AnalysisResult `json:"deadStock"`
	SupplierRisk []AnalysisResult `json:"supplierRisk"`
	Items        []InventoryItem  `json:"items"`
	TotalItems   int              `json:"totalItems"`
	Summary      Summary          `json:"summary"`
	Columns      ColumnMap        `json:"columns"`
}

// Bucket returns the result list for c, or nil for Healthy and unknown values.
func (a AggregatedAnalysis) Bucket(c RiskCategory) []AnalysisResult {
	switch c {
	case CategoryShortfall:
		return a.Shortfall
	case CategoryOversupply:
		return a.Oversupply
	case CategoryDeadStock:
		return a.DeadStock
	case CategorySupplierRisk:
		return a.SupplierRisk
	default:
		return nil
	}
}
