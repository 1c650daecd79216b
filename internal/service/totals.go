package service

type Totals struct {
	VATValue   float64
	GrossValue float64
}

// ComputeTotals derives VAT and gross amounts from a net value. Pure; callers
// are expected to pass a finite non-negative net value and a rate in [0, 1].
func ComputeTotals(netValue, vatRate float64) Totals {
	return Totals{
		VATValue:   netValue * vatRate,
		GrossValue: netValue * (1 + vatRate),
	}
}
