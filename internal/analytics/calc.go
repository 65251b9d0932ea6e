// Package analytics derives shareholder metrics from price and staking data
// and builds render-ready tables and charts for the dashboard.
package analytics

import (
	"fmt"
	"math"

	"cryptometric/internal/model"
)

// Params controls the derived-metric model.
// BaseFees and PreferentialShares are percentages (0..100).
type Params struct {
	BaseFees           float64
	PreferentialShares float64
	InflationFactor    float64
}

// DefaultParams returns the parameters the dashboard was calibrated with.
func DefaultParams() Params {
	return Params{
		BaseFees:           90,
		PreferentialShares: 25,
		InflationFactor:    166.3,
	}
}

// Calculate derives dividend, share and yield metrics for one asset.
// Inputs that zero a denominator are rejected so a degenerate row fails the
// render instead of putting NaN or Inf into the response.
func Calculate(price, circulatingSupply, earnings float64, p Params) (model.AssetMetrics, error) {
	var m model.AssetMetrics
	if price <= 0 || circulatingSupply <= 0 {
		return m, fmt.Errorf("price (%g) and circulating supply (%g) must be positive", price, circulatingSupply)
	}

	// Earnings and dividends
	m.BuybackNominalAmount = earnings * (p.BaseFees / 100)
	m.CashDividend = earnings * (1 - p.BaseFees/100)

	// Shares
	preferentialSharesAmount := circulatingSupply * (p.PreferentialShares / 100)
	if preferentialSharesAmount == 0 {
		return model.AssetMetrics{}, fmt.Errorf("preferential shares fraction is zero, dividend yields undefined")
	}
	m.OrdinaryShares = circulatingSupply * (1 - p.PreferentialShares/100)

	// Yields
	m.CashDividendYield = m.CashDividend / (price * preferentialSharesAmount)
	m.ScripDividend = p.InflationFactor * math.Sqrt(preferentialSharesAmount)
	m.ScripDividendYield = m.ScripDividend / preferentialSharesAmount
	m.BuybackYield = m.BuybackNominalAmount / (circulatingSupply * price)
	if m.BuybackYield == 0 {
		return model.AssetMetrics{}, fmt.Errorf("zero buyback yield (earnings=%g), staker metrics undefined", earnings)
	}

	// Staker rewards
	m.PreferentialSharesStaker = m.CashDividendYield + m.ScripDividendYield
	m.OrdinarySharesStaker = (m.CashDividendYield - m.BuybackYield) / m.BuybackYield

	m.ParticipantDilution = math.Abs(m.PreferentialSharesStaker - m.OrdinarySharesStaker)
	return m, nil
}
