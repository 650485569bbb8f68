package pipeline

import (
	"math"
	"time"

	"campaignetl/internal/schema"
	"campaignetl/internal/table"
	"campaignetl/pkg/records"
)

// Deriver computes the marketing KPIs and time-intelligence attributes from
// the clean table. It is strictly 1:1, one output row per input row, with no
// filtering. A derived column is only produced when every source column it
// needs exists in the clean table, mirroring the Cleaner's tolerance for
// absent optional columns; within a row, a missing or undefined input yields
// NaN for that metric.
type Deriver struct{}

// Derive returns a copy of clean with the derived columns appended.
func (Deriver) Derive(clean *table.Table) *table.Table {
	out := clean.Clone()

	var (
		hasImpressions = out.HasColumn(schema.ColImpressions)
		hasClicks      = out.HasColumn(schema.ColClicks)
		hasSpent       = out.HasColumn(schema.ColMarkSpent)
		hasOrders      = out.HasColumn(schema.ColOrders)
		hasRevenue     = out.HasColumn(schema.ColRevenue)
		hasLeads       = out.HasColumn(schema.ColLeads)
		hasDate        = out.HasColumn(schema.ColDate)
	)

	for _, r := range out.Rows {
		if hasClicks && hasImpressions {
			r[schema.ColCTRPct] = Round2(div(r, schema.ColClicks, schema.ColImpressions) * 100)
		}
		if hasSpent && hasClicks {
			r[schema.ColCPC] = Round2(div(r, schema.ColMarkSpent, schema.ColClicks))
		}
		if hasSpent && hasOrders {
			r[schema.ColCPA] = Round2(div(r, schema.ColMarkSpent, schema.ColOrders))
		}
		if hasOrders && hasClicks {
			r[schema.ColConversionRatePct] = Round2(div(r, schema.ColOrders, schema.ColClicks) * 100)
		}
		if hasRevenue && hasSpent {
			r[schema.ColROAS] = Round2(div(r, schema.ColRevenue, schema.ColMarkSpent))
			r[schema.ColProfit] = Round2(sub(r, schema.ColRevenue, schema.ColMarkSpent))
		}
		if hasLeads && hasClicks {
			r[schema.ColLeadRatePct] = Round2(div(r, schema.ColLeads, schema.ColClicks) * 100)
		}
		if hasDate {
			deriveCalendar(r)
		}
	}

	appendWhen := map[string]bool{
		schema.ColCTRPct:            hasClicks && hasImpressions,
		schema.ColCPC:               hasSpent && hasClicks,
		schema.ColCPA:               hasSpent && hasOrders,
		schema.ColConversionRatePct: hasOrders && hasClicks,
		schema.ColROAS:              hasRevenue && hasSpent,
		schema.ColProfit:            hasRevenue && hasSpent,
		schema.ColLeadRatePct:       hasLeads && hasClicks,
		schema.ColYear:              hasDate,
		schema.ColMonth:             hasDate,
		schema.ColWeekday:           hasDate,
		schema.ColIsWeekend:         hasDate,
	}
	for _, c := range schema.DerivedColumns {
		if appendWhen[c] {
			out.AddColumn(c)
		}
	}
	return out
}

// div computes SafeDiv over two record fields; a missing or non-numeric
// operand yields NaN.
func div(r records.Record, num, den string) float64 {
	n, nok := r.Float(num)
	d, dok := r.Float(den)
	if !nok || !dok {
		return math.NaN()
	}
	return SafeDiv(n, d)
}

// sub computes a-b over two record fields; a missing or non-numeric operand
// yields NaN.
func sub(r records.Record, a, b string) float64 {
	av, aok := r.Float(a)
	bv, bok := r.Float(b)
	if !aok || !bok {
		return math.NaN()
	}
	return av - bv
}

// deriveCalendar fills Year, Month, Weekday, and Is_Weekend from the
// canonical c_date string. Clean tables always carry a parseable date; rows
// that somehow do not are left without calendar fields (they persist NULL).
func deriveCalendar(r records.Record) {
	ts, ok := r.Time(schema.ColDate, schema.DateLayout)
	if !ok {
		return
	}
	r[schema.ColYear] = ts.Year()
	r[schema.ColMonth] = int(ts.Month())
	r[schema.ColWeekday] = ts.Weekday().String()
	weekend := 0
	if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
		weekend = 1
	}
	r[schema.ColIsWeekend] = weekend
}
