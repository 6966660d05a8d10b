package assets

import "mizan-backend/internal/pkg/money"

// Category identifies one supported asset category.
type Category string

const (
	CategoryCash        Category = "cash"
	CategoryMetals      Category = "precious_metals"
	CategoryStocks      Category = "stocks"
	CategoryRetirement  Category = "retirement"
	CategoryRealEstate  Category = "real_estate"
	CategoryCrypto      Category = "crypto"
	CategoryReceivables Category = "receivables"
)

// Categories lists all supported asset categories in display order.
var Categories = []Category{
	CategoryCash,
	CategoryMetals,
	CategoryStocks,
	CategoryRetirement,
	CategoryRealEstate,
	CategoryCrypto,
	CategoryReceivables,
}

// CashInput holds liquid money holdings. Every field is fully zakatable.
type CashInput struct {
	CashOnHand      float64 `json:"cash_on_hand"`
	CheckingAccount float64 `json:"checking_account"`
	SavingsAccount  float64 `json:"savings_account"`
	DigitalWallets  float64 `json:"digital_wallets"`
	ForeignCurrency float64 `json:"foreign_currency"`
	HawlMet         bool    `json:"hawlMet"`
}

// MetalsInput holds gold and silver weights in grams, split by usage.
// Regular (worn) jewelry is not zakatable; occasional-use and
// investment holdings are.
type MetalsInput struct {
	GoldRegularGrams      float64 `json:"gold_regular_grams"`
	GoldOccasionalGrams   float64 `json:"gold_occasional_grams"`
	GoldInvestmentGrams   float64 `json:"gold_investment_grams"`
	SilverRegularGrams    float64 `json:"silver_regular_grams"`
	SilverOccasionalGrams float64 `json:"silver_occasional_grams"`
	SilverInvestmentGrams float64 `json:"silver_investment_grams"`
	HawlMet               bool    `json:"hawlMet"`
}

// StocksInput holds equity positions at current market value.
type StocksInput struct {
	ActiveTrading   float64 `json:"active_trading"`
	PassiveHoldings float64 `json:"passive_holdings"`
	Dividends       float64 `json:"dividends"`
	HawlMet         bool    `json:"hawlMet"`
}

// RetirementInput holds pension/retirement account balances.
type RetirementInput struct {
	AccessibleFunds   float64 `json:"accessible_funds"`
	LockedFunds       float64 `json:"locked_funds"`
	WithdrawalPenalty float64 `json:"withdrawal_penalty"`
	TaxEstimate       float64 `json:"tax_estimate"`
	HawlMet           bool    `json:"hawlMet"`
}

// RealEstateInput holds property values and saved rental income.
type RealEstateInput struct {
	PrimaryResidence  float64 `json:"primary_residence"`
	RentalIncomeSaved float64 `json:"rental_income_saved"`
	PropertyForSale   float64 `json:"property_for_sale"`
	HawlMet           bool    `json:"hawlMet"`
}

// CryptoInput holds cryptocurrency positions valued in the display
// currency.
type CryptoInput struct {
	Holdings       float64 `json:"holdings"`
	StakedLocked   float64 `json:"staked_locked"`
	StakingRewards float64 `json:"staking_rewards"`
	HawlMet        bool    `json:"hawlMet"`
}

// ReceivablesInput holds money owed to the payer.
type ReceivablesInput struct {
	GoodLoans     float64 `json:"good_loans"`
	DoubtfulDebts float64 `json:"doubtful_debts"`
	HawlMet       bool    `json:"hawlMet"`
}

// Inputs bundles all category inputs for one calculation run. The zero
// value is a valid, fully-empty input set.
type Inputs struct {
	Cash        CashInput        `json:"cash"`
	Metals      MetalsInput      `json:"precious_metals"`
	Stocks      StocksInput      `json:"stocks"`
	Retirement  RetirementInput  `json:"retirement"`
	RealEstate  RealEstateInput  `json:"real_estate"`
	Crypto      CryptoInput      `json:"crypto"`
	Receivables ReceivablesInput `json:"receivables"`
}

// Sanitized returns a copy with every numeric field clamped to a
// non-negative finite value. Raw input crosses this boundary exactly
// once; downstream stages never re-validate.
func (in Inputs) Sanitized() Inputs {
	out := in
	for _, f := range []*float64{
		&out.Cash.CashOnHand, &out.Cash.CheckingAccount, &out.Cash.SavingsAccount,
		&out.Cash.DigitalWallets, &out.Cash.ForeignCurrency,
		&out.Metals.GoldRegularGrams, &out.Metals.GoldOccasionalGrams, &out.Metals.GoldInvestmentGrams,
		&out.Metals.SilverRegularGrams, &out.Metals.SilverOccasionalGrams, &out.Metals.SilverInvestmentGrams,
		&out.Stocks.ActiveTrading, &out.Stocks.PassiveHoldings, &out.Stocks.Dividends,
		&out.Retirement.AccessibleFunds, &out.Retirement.LockedFunds,
		&out.Retirement.WithdrawalPenalty, &out.Retirement.TaxEstimate,
		&out.RealEstate.PrimaryResidence, &out.RealEstate.RentalIncomeSaved, &out.RealEstate.PropertyForSale,
		&out.Crypto.Holdings, &out.Crypto.StakedLocked, &out.Crypto.StakingRewards,
		&out.Receivables.GoodLoans, &out.Receivables.DoubtfulDebts,
	} {
		*f = money.Sanitize(*f)
	}
	return out
}

// HawlMet returns the hawl flag for a category.
func (in Inputs) HawlMet(c Category) bool {
	switch c {
	case CategoryCash:
		return in.Cash.HawlMet
	case CategoryMetals:
		return in.Metals.HawlMet
	case CategoryStocks:
		return in.Stocks.HawlMet
	case CategoryRetirement:
		return in.Retirement.HawlMet
	case CategoryRealEstate:
		return in.RealEstate.HawlMet
	case CategoryCrypto:
		return in.Crypto.HawlMet
	case CategoryReceivables:
		return in.Receivables.HawlMet
	}
	return false
}
