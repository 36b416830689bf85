package payment

// Static conversion multipliers into ZAR, the base currency all amounts are
// normalized to for display and reporting.
var zarRates = map[string]float64{
	"ZAR": 1,
	"GBP": 23.16,
	"USD": 17.18,
}

// RateToZAR returns the multiplier for a currency code and whether the code
// is part of the supported set.
func RateToZAR(currency string) (float64, bool) {
	rate, ok := zarRates[currency]
	return rate, ok
}
