package payroll

import (
	"github.com/shopspring/decimal"
)

const (
	BaseSourceSalaryStructure  = "salary_structure"
	BaseSourceEntryGrossSalary = "entry_gross_salary"
)

// Summary is the recomputed view of an entry. The previews are
// informational and are never sent upstream.
type Summary struct {
	Base           float64
	BaseSource     string
	Allowances     MoneyBreakdown
	Deductions     MoneyBreakdown
	AllowanceTotal float64
	DeductionTotal float64
	GrossPreview   float64
	NetPreview     float64
}

// ComposeSummary uses structureBase when a salary structure applies and
// falls back to the entry's gross salary otherwise.
func ComposeSummary(entry PayrollEntry, structureBase *float64) Summary {
	base := entry.GrossSalary
	source := BaseSourceEntryGrossSalary
	if structureBase != nil {
		base = *structureBase
		source = BaseSourceSalaryStructure
	}

	allowances := entry.Allowances.Normalize()
	deductions := entry.Deductions.Normalize()

	baseDec := decimal.NewFromFloat(base)
	allowanceDec := decimal.NewFromFloat(allowances.Total)
	deductionDec := decimal.NewFromFloat(deductions.Total)

	gross := baseDec.Add(allowanceDec)
	net := gross.Sub(deductionDec)

	return Summary{
		Base:           base,
		BaseSource:     source,
		Allowances:     allowances,
		Deductions:     deductions,
		AllowanceTotal: allowances.Total,
		DeductionTotal: deductions.Total,
		GrossPreview:   gross.InexactFloat64(),
		NetPreview:     net.InexactFloat64(),
	}
}
