package settings

import "testing"

func TestFromRawFallsBackPerField(t *testing.T) {
	raw := map[string]string{
		"extra_per_two_pages": "not-a-number",
		"fancy_multiplier":    "2.0",
		"domain_per_year":     "-5",
		"feature_prices":      `{"board":123000}`,
	}

	s := FromRaw(raw)

	if s.ExtraPerTwoPages != Defaults().ExtraPerTwoPages {
		t.Fatalf("unparsable extra charge should fall back, got %d", s.ExtraPerTwoPages)
	}
	if s.FancyMultiplier != 2.0 {
		t.Fatalf("expected parsed multiplier 2.0, got %v", s.FancyMultiplier)
	}
	if s.DomainPerYear != Defaults().DomainPerYear {
		t.Fatalf("negative domain cost should fall back, got %d", s.DomainPerYear)
	}
	if s.FeaturePrices["board"] != 123000 {
		t.Fatalf("expected parsed board price, got %d", s.FeaturePrices["board"])
	}
}

func TestFromRawEmptyMapYieldsDefaults(t *testing.T) {
	s := FromRaw(map[string]string{})
	d := Defaults()

	if s.FancyMultiplier != d.FancyMultiplier {
		t.Fatal("empty config should produce default multiplier")
	}
	if len(s.PageTiers) != len(d.PageTiers) {
		t.Fatal("empty config should produce default tiers")
	}
	if s.Bank.AccountNumber != d.Bank.AccountNumber {
		t.Fatal("empty config should produce default bank info")
	}
}

func TestFromRawRejectsMalformedTierTable(t *testing.T) {
	s := FromRaw(map[string]string{
		"page_tiers": `[{"min":10,"max":5,"cost":100}]`,
	})

	if len(s.PageTiers) != len(Defaults().PageTiers) {
		t.Fatal("inverted tier bounds should fall back to default tiers")
	}
}

func TestToRawRoundTripsThroughFromRaw(t *testing.T) {
	seeded := RowsToMap(ToRaw(Defaults()))
	s := FromRaw(seeded)

	if s.FancyMultiplier != Defaults().FancyMultiplier {
		t.Fatalf("multiplier did not survive the round trip: %v", s.FancyMultiplier)
	}
	if s.FeaturePrices["board"] != Defaults().FeaturePrices["board"] {
		t.Fatal("feature prices did not survive the round trip")
	}
	if s.HostingPerYear[2] != Defaults().HostingPerYear[2] {
		t.Fatal("hosting table did not survive the round trip")
	}
}
