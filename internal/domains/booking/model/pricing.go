package model

import (
	"fmt"
	"resort/config"
	"slices"
	"strings"
)

// Rates is the price table every quote and every new booking is computed from.
type Rates struct {
	Day         int64
	Overnight   int64
	EntranceFee int64
	AddOns      map[string]int64
}

type Quote struct {
	Accommodation string   `json:"accommodation"`
	Guests        int      `json:"guests"`
	AddOns        []string `json:"add_ons"`
	BaseRate      int64    `json:"base_rate"`
	EntranceFees  int64    `json:"entrance_fees"`
	AddOnsTotal   int64    `json:"add_ons_total"`
	Total         int64    `json:"total_amount"`
}

func RatesFromConfig(cfg *config.Config) Rates {
	return Rates{
		Day:         cfg.Resort.DayRate,
		Overnight:   cfg.Resort.OvernightRate,
		EntranceFee: cfg.Resort.EntranceFee,
		AddOns: map[string]int64{
			AddOnKaraoke: cfg.Resort.KaraokePrice,
		},
	}
}

func (r Rates) baseRate(accommodation string) (int64, bool) {
	switch accommodation {
	case AccommodationDay:
		return r.Day, true
	case AccommodationOvernight:
		return r.Overnight, true
	default:
		return 0, false
	}
}

// NormalizeAddOns lowercases, trims and de-duplicates add-on names, keeping first-seen order.
func NormalizeAddOns(addOns []string) []string {
	out := make([]string, 0, len(addOns))

	for _, addOn := range addOns {
		name := strings.ToLower(strings.TrimSpace(addOn))
		if name == "" || slices.Contains(out, name) {
			continue
		}

		out = append(out, name)
	}

	return out
}

// Quote computes base rate + guests * entrance fee + selected add-ons.
// The returned messages describe every unknown input; the quote is only valid when there are none.
func (r Rates) Quote(accommodation string, guests int, addOns []string) (Quote, []string) {
	var msgs []string

	quote := Quote{
		Accommodation: accommodation,
		Guests:        guests,
		AddOns:        NormalizeAddOns(addOns),
	}

	base, ok := r.baseRate(accommodation)
	if !ok {
		msgs = append(msgs, fmt.Sprintf("accommodation must be one of %s %s", AccommodationDay, AccommodationOvernight))
	}

	if guests < 1 {
		msgs = append(msgs, "guests must be at least 1")
	}

	for _, addOn := range quote.AddOns {
		price, known := r.AddOns[addOn]
		if !known {
			msgs = append(msgs, fmt.Sprintf("add_ons contains unknown add-on %q", addOn))

			continue
		}

		quote.AddOnsTotal += price
	}

	if len(msgs) > 0 {
		return Quote{}, msgs
	}

	quote.BaseRate = base
	quote.EntranceFees = int64(guests) * r.EntranceFee
	quote.Total = quote.BaseRate + quote.EntranceFees + quote.AddOnsTotal

	return quote, nil
}
