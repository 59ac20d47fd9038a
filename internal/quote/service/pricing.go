package service

import (
	"agency_backend/internal/quote/transport"
	"agency_backend/internal/settings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.Korean)

// CalculateEstimate is the pricing engine: a pure function from a project
// description and a settings snapshot to a price estimate. It never fails;
// malformed input is rejected upstream by validation before it gets here.
//
// Pricing policy: each block is priced at the cost of the tier band it falls
// in, accumulated band by band, so the base price rises monotonically with
// the block count even when a later band is cheaper. Blocks beyond the
// highest band price at that band's cost plus ExtraPerTwoPages for each
// started pair past its upper bound. The style multiplier scales the base
// only; feature surcharges are flat and added equally to both bounds, so
// max-min always equals the base range width.
func CalculateEstimate(minBlocks, maxBlocks int, style transport.UIUXStyle, features []string, s *settings.QuoteSettings) transport.PriceEstimate {
	multiplier := decimal.NewFromInt(1)
	if style == transport.StyleFancy {
		multiplier = decimal.NewFromFloat(s.FancyMultiplier)
	}

	baseMin := basePrice(minBlocks, multiplier, s)
	baseMax := basePrice(maxBlocks, multiplier, s)

	var featureTotal int64
	lines := make([]transport.FeatureLine, 0, len(features))
	for _, name := range features {
		price := s.FeaturePrices[name]
		// Unknown and zero-priced features contribute nothing and are left
		// out of the itemized breakdown.
		if price <= 0 {
			continue
		}
		featureTotal += price
		lines = append(lines, transport.FeatureLine{Name: name, Price: price})
	}

	min := baseMin + featureTotal
	max := baseMax + featureTotal

	return transport.PriceEstimate{
		Min:       min,
		Max:       max,
		Formatted: FormatRange(min, max),
		Breakdown: transport.EstimateBreakdown{
			BaseMin:      baseMin,
			BaseMax:      baseMax,
			FeatureTotal: featureTotal,
			Features:     lines,
		},
	}
}

// FormatRange renders a price range with grouped digits, e.g.
// "₩250,000 ~ ₩500,000".
func FormatRange(min, max int64) string {
	return pricePrinter.Sprintf("₩%d ~ ₩%d", min, max)
}

func basePrice(blocks int, multiplier decimal.Decimal, s *settings.QuoteSettings) int64 {
	if blocks <= 0 || len(s.PageTiers) == 0 {
		return 0
	}

	highest := s.PageTiers[len(s.PageTiers)-1]

	raw := decimal.Zero
	covered := 0
	for _, tier := range s.PageTiers {
		if blocks <= covered {
			break
		}
		upper := tier.MaxPages
		if blocks < upper {
			upper = blocks
		}
		if upper > covered {
			raw = raw.Add(decimal.NewFromInt(int64(upper - covered)).Mul(decimal.NewFromInt(tier.Cost)))
		}
		covered = tier.MaxPages
	}

	if blocks > highest.MaxPages {
		over := blocks - highest.MaxPages
		startedPairs := int64((over + 1) / 2)
		raw = raw.Add(decimal.NewFromInt(int64(over)).Mul(decimal.NewFromInt(highest.Cost))).
			Add(decimal.NewFromInt(startedPairs).Mul(decimal.NewFromInt(s.ExtraPerTwoPages)))
	}

	return raw.Mul(multiplier).Round(0).IntPart()
}
