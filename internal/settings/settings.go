// Package settings provides the pricing/business configuration module: a
// typed snapshot parsed from the spreadsheet's config area, memoized with a
// TTL and degrading to compiled-in defaults when the store is unreachable.
package settings

// PageTier is one band of the tiered page-cost table. A block count inside
// [MinPages, MaxPages] prices every block at Cost.
type PageTier struct {
	MinPages int   `json:"min"`
	MaxPages int   `json:"max"`
	Cost     int64 `json:"cost"`
}

// CompanyInfo holds the agency details shown on quotes.
type CompanyInfo struct {
	Name           string `json:"name"`
	RegistrationNo string `json:"registrationNo"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	Address        string `json:"address"`
}

// BankInfo holds the payment account details shown on quotes.
type BankInfo struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

// QuoteSettings is the configuration snapshot used for pricing and display.
// Instances are always fully populated: every field either parsed from the
// store or taken from the compiled-in default. Never mutated after assembly;
// cache refresh replaces the snapshot wholesale.
type QuoteSettings struct {
	PageTiers         []PageTier       `json:"pageTiers"`
	ExtraPerTwoPages  int64            `json:"extraPerTwoPages"`
	FancyMultiplier   float64          `json:"fancyMultiplier"`
	FeaturePrices     map[string]int64 `json:"featurePrices"`
	HostingPerYear    map[int]int64    `json:"hostingPerYear"`
	DomainPerYear     int64            `json:"domainPerYear"`
	DomainTransferFee int64            `json:"domainTransferFee"`
	RevisionsIncluded int              `json:"revisionsIncluded"`
	RevisionExtraCost int64            `json:"revisionExtraCost"`
	Company           CompanyInfo      `json:"company"`
	Bank              BankInfo         `json:"bank"`
}

// Defaults returns the compiled-in settings used when the store is
// unreachable or a field is unparsable. Callers receive a fresh copy.
func Defaults() *QuoteSettings {
	return &QuoteSettings{
		PageTiers: []PageTier{
			{MinPages: 1, MaxPages: 5, Cost: 50000},
			{MinPages: 6, MaxPages: 10, Cost: 50000},
			{MinPages: 11, MaxPages: 20, Cost: 45000},
		},
		ExtraPerTwoPages: 80000,
		FancyMultiplier:  1.5,
		FeaturePrices: map[string]int64{
			"board":       200000,
			"cart":        300000,
			"gallery":     100000,
			"reservation": 150000,
			"members":     250000,
		},
		HostingPerYear: map[int]int64{
			1: 100000,
			2: 180000,
			3: 250000,
		},
		DomainPerYear:     15000,
		DomainTransferFee: 10000,
		RevisionsIncluded: 2,
		RevisionExtraCost: 30000,
		Company: CompanyInfo{
			Name:    "Studio Onda",
			Contact: "070-0000-0000",
			Email:   "hello@studio-onda.example",
		},
		Bank: BankInfo{
			Name:          "KB",
			AccountNumber: "000-000000-00-000",
			AccountHolder: "Studio Onda",
		},
	}
}
