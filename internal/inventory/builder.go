package inventory

import (
	"strconv"

	"github.com/google/uuid"
)

// rowNamespace seeds row identifiers. Ids are derived from the row position
// alone, so decoding the same file twice yields the same ids.
var rowNamespace = uuid.MustParse("6f1c2a4e-3b7d-5e90-8a12-c4d5e6f70819")

// RowID returns the deterministic identifier for the row at index.
func RowID(index int) string {
	return uuid.NewSHA1(rowNamespace, []byte(strconv.Itoa(index))).String()
}

// BuildItem assembles the item for one record. It never fails: unresolved
// columns contribute 0 or a placeholder text.
func BuildItem(rec RawRecord, cols ColumnMap, rowIndex int) InventoryItem {
	cell := func(f SchemaField) Value {
		h, ok := cols.Lookup(f)
		if !ok {
			return Absent()
		}
		return rec.Get(h)
	}
	num := func(f SchemaField) float64 {
		return NormalizeNumeric(cell(f))
	}

	base := num(FieldOnHandCoverageBase)
	transit := num(FieldInTransitCoverage)
	other := num(FieldOtherCoverage)

	return InventoryItem{
		RowID:              RowID(rowIndex),
		RowIndex:           rowIndex,
		Identifier:         NormalizeText(cell(FieldIdentifier), UnknownText),
		Location:           NormalizeText(cell(FieldLocation), UnknownText),
		DemandType:         NormalizeText(cell(FieldDemandType), UnknownText),
		OnHandCoverageBase: base,
		InTransitCoverage:  transit,
		OtherCoverage:      other,
		TotalCoverage:      base + transit + other,
		ForecastAccuracy:   NormalizePercentage(cell(FieldForecastAccuracy), cols.Resolved(FieldForecastAccuracy), 0),
		OnHand:             num(FieldOnHand),
		TrailingDemand:     num(FieldTrailingDemand),
		SupplierName:       NormalizeText(cell(FieldSupplierName), UnknownSupplier),
		LeadTimeDays:       num(FieldLeadTimeDays),
		OnTimeDeliveryRate: NormalizePercentage(cell(FieldOnTimeDeliveryRate), cols.Resolved(FieldOnTimeDeliveryRate), DefaultOnTimeDeliveryRate),
		Raw:                rec,
	}
}
