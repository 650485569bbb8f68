// Package schema fixes the campaign table contract: the staging and fact
// table names, the eleven campaign columns with their logical kinds, the
// required-column set enforced by cleaning, and the derived KPI columns
// appended by feature derivation.
package schema

import "campaignetl/internal/ddl"

// Table names used by the pipeline. StagingTable holds the most recent
// upload verbatim; CleanTable the cleaned intermediate; FactTable the final
// cleaned-plus-derived table. All three are replaced wholesale on each run.
const (
	StagingTable = "stg_campaigns_raw"
	CleanTable   = "stg_campaigns_clean"
	FactTable    = "fact_campaigns_clean"
)

// DateLayout is the canonical date rendering for c_date.
const DateLayout = "2006-01-02"

// DateLayouts are the layouts accepted when parsing uploaded dates, tried in
// order. The canonical layout comes first so re-cleaning already-clean data
// parses on the first attempt.
var DateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"01/02/2006",
}

// Campaign columns, in staging-table order.
const (
	ColID           = "id"
	ColDate         = "c_date"
	ColCampaignName = "campaign_name"
	ColCategory     = "category"
	ColCampaignID   = "campaign_id"
	ColImpressions  = "impressions"
	ColMarkSpent    = "mark_spent"
	ColClicks       = "clicks"
	ColLeads        = "leads"
	ColOrders       = "orders"
	ColRevenue      = "revenue"
)

// RequiredColumns must be non-null for a row to survive cleaning. Rows
// missing any of these are dropped, never repaired.
var RequiredColumns = []string{
	ColDate, ColCampaignName, ColImpressions, ColClicks, ColMarkSpent, ColRevenue,
}

// NumericColumns are checked for negative values during cleaning. Columns
// absent from the input are skipped.
var NumericColumns = []string{
	ColImpressions, ColClicks, ColLeads, ColOrders, ColMarkSpent, ColRevenue,
}

// campaignColumns is the staging schema. Nothing is NOT NULL: the staging
// table must accept dirty uploads verbatim; cleaning handles the rest.
var campaignColumns = []ddl.ColumnDef{
	{Name: ColID, Kind: "int"},
	{Name: ColDate, Kind: "date"},
	{Name: ColCampaignName, Kind: "text"},
	{Name: ColCategory, Kind: "text"},
	{Name: ColCampaignID, Kind: "text"},
	{Name: ColImpressions, Kind: "int"},
	{Name: ColMarkSpent, Kind: "float"},
	{Name: ColClicks, Kind: "int"},
	{Name: ColLeads, Kind: "int"},
	{Name: ColOrders, Kind: "int"},
	{Name: ColRevenue, Kind: "float"},
}

// Derived KPI and time-intelligence columns, in output order.
const (
	ColCTRPct            = "CTR_pct"
	ColCPC               = "CPC"
	ColCPA               = "CPA"
	ColConversionRatePct = "ConversionRate_pct"
	ColROAS              = "ROAS"
	ColProfit            = "Profit"
	ColLeadRatePct       = "LeadRate_pct"
	ColYear              = "Year"
	ColMonth             = "Month"
	ColWeekday           = "Weekday"
	ColIsWeekend         = "Is_Weekend"
)

// DerivedColumns lists every derived column in the order they are appended
// to the fact table.
var DerivedColumns = []string{
	ColCTRPct, ColCPC, ColCPA, ColConversionRatePct, ColROAS, ColProfit,
	ColLeadRatePct, ColYear, ColMonth, ColWeekday, ColIsWeekend,
}

// derivedKinds maps each derived column to its logical kind.
var derivedKinds = map[string]string{
	ColCTRPct:            "float",
	ColCPC:               "float",
	ColCPA:               "float",
	ColConversionRatePct: "float",
	ColROAS:              "float",
	ColProfit:            "float",
	ColLeadRatePct:       "float",
	ColYear:              "int",
	ColMonth:             "int",
	ColWeekday:           "text",
	ColIsWeekend:         "int",
}

// ColumnKinds returns the logical kind of every campaign column, used when
// coercing uploaded CSV values.
func ColumnKinds() map[string]string {
	out := make(map[string]string, len(campaignColumns))
	for _, c := range campaignColumns {
		out[c.Name] = c.Kind
	}
	return out
}

// StagingColumns returns the staging column names in schema order.
func StagingColumns() []string {
	return StagingTableDef().ColumnNames()
}

// StagingTableDef returns the definition of the raw staging table.
func StagingTableDef() ddl.TableDef {
	return ddl.TableDef{
		Name:    StagingTable,
		Columns: append([]ddl.ColumnDef(nil), campaignColumns...),
	}
}

// TableDefFor builds a table definition for the given name and column list.
// Campaign columns take their schema kind, derived columns their KPI kind,
// anything else falls back to text. Column order follows cols, so the stored
// table mirrors the in-memory one.
func TableDefFor(name string, cols []string) ddl.TableDef {
	kinds := ColumnKinds()
	defs := make([]ddl.ColumnDef, 0, len(cols))
	for _, c := range cols {
		kind, ok := kinds[c]
		if !ok {
			kind, ok = derivedKinds[c]
		}
		if !ok {
			kind = "text"
		}
		defs = append(defs, ddl.ColumnDef{Name: c, Kind: kind})
	}
	return ddl.TableDef{Name: name, Columns: defs}
}
