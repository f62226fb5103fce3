package booking

// PriceBreakdown holds the computed price components of a booking,
// all in the smallest currency unit.
type PriceBreakdown struct {
	Base       int64 `json:"base"`
	ServiceFee int64 `json:"service_fee"`
	Tax        int64 `json:"tax"`
	Total      int64 `json:"total"`
}

const (
	serviceFeePercent = 10
	taxPercent        = 18
)

// CalculatePrice computes the price breakdown for a booking.
//
// The rounding is applied sequentially: the service fee is rounded from the
// base alone, then the tax is rounded from base plus fee. Reordering or
// combining the steps changes totals, so the sequence is fixed.
// Inputs are not validated; zero or negative values propagate arithmetically.
func CalculatePrice(hourlyRate int64, durationHours int) PriceBreakdown {
	base := hourlyRate * int64(durationHours)
	fee := roundHalfUpPercent(base, serviceFeePercent)
	tax := roundHalfUpPercent(base+fee, taxPercent)

	return PriceBreakdown{
		Base:       base,
		ServiceFee: fee,
		Tax:        tax,
		Total:      base + fee + tax,
	}
}

// roundHalfUpPercent returns pct% of amount, rounded half up to the nearest
// whole currency unit.
func roundHalfUpPercent(amount int64, pct int64) int64 {
	return (amount*pct + 50) / 100
}
