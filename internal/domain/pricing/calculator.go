// Package pricing turns a date range, unit rate and party size into a total.
// All arithmetic is decimal; nothing here touches floating point.
package pricing

import (
	"math"

	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/pkg/errs"
)

type Quote struct {
	UnitRate  money.Money
	PartySize int
	Nights    int
	Total     money.Money
}

type Calculator interface {
	Quote(unitRate money.Money, partySize int, r daterange.DateRange) (Quote, error)
}

type DefaultCalculator struct{}

func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{}
}

func (DefaultCalculator) Quote(unitRate money.Money, partySize int, r daterange.DateRange) (Quote, error) {
	nights, err := ComputeNights(r)
	if err != nil {
		return Quote{}, err
	}
	total, err := ComputeTotal(unitRate, partySize, nights)
	if err != nil {
		return Quote{}, err
	}
	return Quote{UnitRate: unitRate, PartySize: partySize, Nights: nights, Total: total}, nil
}

// ComputeNights is ceil((end - start) / 1 day).
func ComputeNights(r daterange.DateRange) (int, error) {
	d := r.Duration()
	if d <= 0 {
		return 0, errs.InvalidRange("dateRange", "end must be after start")
	}
	return int(math.Ceil(float64(d) / float64(daterange.Day))), nil
}

// ComputeTotal is unitRate * partySize * nights.
func ComputeTotal(unitRate money.Money, partySize, nights int) (money.Money, error) {
	if !unitRate.IsPositive() {
		return money.Money{}, errs.InvalidInput("unitRate", "must be positive")
	}
	if partySize <= 0 {
		return money.Money{}, errs.InvalidInput("partySize", "must be positive")
	}
	if nights <= 0 {
		return money.Money{}, errs.InvalidInput("nights", "must be positive")
	}
	return unitRate.MulInt(int64(partySize) * int64(nights)), nil
}
