package settings

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Raw config keys as they appear in the first column of the config area.
const (
	keyPageTiers         = "page_tiers"
	keyExtraPerTwoPages  = "extra_per_two_pages"
	keyFancyMultiplier   = "fancy_multiplier"
	keyFeaturePrices     = "feature_prices"
	keyHostingPerYear    = "hosting_per_year"
	keyDomainPerYear     = "domain_per_year"
	keyDomainTransferFee = "domain_transfer_fee"
	keyRevisionsIncluded = "revisions_included"
	keyRevisionExtraCost = "revision_extra_cost"
	keyCompanyName       = "company_name"
	keyCompanyRegNo      = "company_registration_no"
	keyCompanyContact    = "company_contact"
	keyCompanyEmail      = "company_email"
	keyCompanyAddress    = "company_address"
	keyBankName          = "bank_name"
	keyBankAccountNo     = "bank_account_number"
	keyBankAccountHolder = "bank_account_holder"
)

// FromRaw assembles a fully populated QuoteSettings from key/value rows.
// Each field independently falls back to its compiled-in default when the key
// is absent or the value does not parse; a partially broken config area never
// yields a partially populated snapshot.
func FromRaw(raw map[string]string) *QuoteSettings {
	s := Defaults()

	if tiers, ok := parseTiers(raw[keyPageTiers]); ok {
		s.PageTiers = tiers
	}
	if v, ok := parseNonNegInt64(raw[keyExtraPerTwoPages]); ok {
		s.ExtraPerTwoPages = v
	}
	if v, ok := parsePositiveFloat(raw[keyFancyMultiplier]); ok {
		s.FancyMultiplier = v
	}
	if prices, ok := parsePriceMap(raw[keyFeaturePrices]); ok {
		s.FeaturePrices = prices
	}
	if hosting, ok := parseHosting(raw[keyHostingPerYear]); ok {
		s.HostingPerYear = hosting
	}
	if v, ok := parseNonNegInt64(raw[keyDomainPerYear]); ok {
		s.DomainPerYear = v
	}
	if v, ok := parseNonNegInt64(raw[keyDomainTransferFee]); ok {
		s.DomainTransferFee = v
	}
	if v, ok := parseNonNegInt(raw[keyRevisionsIncluded]); ok {
		s.RevisionsIncluded = v
	}
	if v, ok := parseNonNegInt64(raw[keyRevisionExtraCost]); ok {
		s.RevisionExtraCost = v
	}

	setString(&s.Company.Name, raw[keyCompanyName])
	setString(&s.Company.RegistrationNo, raw[keyCompanyRegNo])
	setString(&s.Company.Contact, raw[keyCompanyContact])
	setString(&s.Company.Email, raw[keyCompanyEmail])
	setString(&s.Company.Address, raw[keyCompanyAddress])
	setString(&s.Bank.Name, raw[keyBankName])
	setString(&s.Bank.AccountNumber, raw[keyBankAccountNo])
	setString(&s.Bank.AccountHolder, raw[keyBankAccountHolder])

	return s
}

// ToRaw renders the settings as deterministic key/value rows for seeding the
// config area. Row order is stable so re-running init overwrites in place.
func ToRaw(s *QuoteSettings) [][]string {
	tiers, _ := json.Marshal(s.PageTiers)
	prices, _ := json.Marshal(s.FeaturePrices)

	hostingByYear := make(map[string]int64, len(s.HostingPerYear))
	for years, cost := range s.HostingPerYear {
		hostingByYear[strconv.Itoa(years)] = cost
	}
	hosting, _ := json.Marshal(hostingByYear)

	rows := [][]string{
		{keyPageTiers, string(tiers)},
		{keyExtraPerTwoPages, strconv.FormatInt(s.ExtraPerTwoPages, 10)},
		{keyFancyMultiplier, strconv.FormatFloat(s.FancyMultiplier, 'f', -1, 64)},
		{keyFeaturePrices, string(prices)},
		{keyHostingPerYear, string(hosting)},
		{keyDomainPerYear, strconv.FormatInt(s.DomainPerYear, 10)},
		{keyDomainTransferFee, strconv.FormatInt(s.DomainTransferFee, 10)},
		{keyRevisionsIncluded, strconv.Itoa(s.RevisionsIncluded)},
		{keyRevisionExtraCost, strconv.FormatInt(s.RevisionExtraCost, 10)},
		{keyCompanyName, s.Company.Name},
		{keyCompanyRegNo, s.Company.RegistrationNo},
		{keyCompanyContact, s.Company.Contact},
		{keyCompanyEmail, s.Company.Email},
		{keyCompanyAddress, s.Company.Address},
		{keyBankName, s.Bank.Name},
		{keyBankAccountNo, s.Bank.AccountNumber},
		{keyBankAccountHolder, s.Bank.AccountHolder},
	}
	return rows
}

// RowsToMap converts key/value rows read from the config area into a lookup
// map, skipping rows without a key cell.
func RowsToMap(rows [][]string) map[string]string {
	raw := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		value := ""
		if len(row) > 1 {
			value = row[1]
		}
		raw[strings.TrimSpace(row[0])] = value
	}
	return raw
}

func parseTiers(value string) ([]PageTier, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	var tiers []PageTier
	if err := json.Unmarshal([]byte(value), &tiers); err != nil || len(tiers) == 0 {
		return nil, false
	}
	for _, t := range tiers {
		if t.MinPages < 0 || t.MaxPages < t.MinPages || t.Cost < 0 {
			return nil, false
		}
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinPages < tiers[j].MinPages })
	return tiers, true
}

func parsePriceMap(value string) (map[string]int64, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	var prices map[string]int64
	if err := json.Unmarshal([]byte(value), &prices); err != nil || len(prices) == 0 {
		return nil, false
	}
	for _, price := range prices {
		if price < 0 {
			return nil, false
		}
	}
	return prices, true
}

func parseHosting(value string) (map[int]int64, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	var byYear map[string]int64
	if err := json.Unmarshal([]byte(value), &byYear); err != nil || len(byYear) == 0 {
		return nil, false
	}
	hosting := make(map[int]int64, len(byYear))
	for yearsStr, cost := range byYear {
		years, err := strconv.Atoi(yearsStr)
		if err != nil || years < 1 || cost < 0 {
			return nil, false
		}
		hosting[years] = cost
	}
	return hosting, true
}

func parseNonNegInt64(value string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseNonNegInt(value string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parsePositiveFloat(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func setString(dst *string, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" {
		*dst = trimmed
	}
}
