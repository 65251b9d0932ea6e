package model

import "fmt"

// StakingRecord is one row of the staking dataset.
// Shared between the loader, the staking view and serialization (json, parquet).
type StakingRecord struct {
	Asset            string  `json:"assets" parquet:"assets"`
	StakingMarketcap float64 `json:"staking_marketcap" parquet:"staking_marketcap"`
	NetIssuance      float64 `json:"net_issuance" parquet:"net_issuance"`
	InflationRate    float64 `json:"inflation_rate" parquet:"inflation_rate"`
	RewardRate       float64 `json:"reward_rate" parquet:"reward_rate"`
}

// PriceRecord is one row of the price dataset.
type PriceRecord struct {
	Asset             string  `json:"assets" parquet:"assets"`
	Price             float64 `json:"price" parquet:"price"`
	CirculatingSupply float64 `json:"circulating_supply" parquet:"circulating_supply"`
	RewardRate        float64 `json:"reward_rate" parquet:"reward_rate"`
	Earnings          float64 `json:"earnings" parquet:"earnings"`
	EarningsPerShare  float64 `json:"earnings_per_share" parquet:"earnings_per_share"`
	PriceToEarnings   float64 `json:"price_to_earnings" parquet:"price_to_earnings"`
	MarketCap         float64 `json:"market_cap,omitempty" parquet:"market_cap,optional"`
}

// AssetMetrics holds the derived shareholder metrics computed per asset.
type AssetMetrics struct {
	BuybackNominalAmount     float64 `json:"buyback_nominal_amount"`
	CashDividend             float64 `json:"cash_dividend"`
	OrdinaryShares           float64 `json:"ordinary_shares"`
	CashDividendYield        float64 `json:"cash_dividend_yield"`
	ScripDividend            float64 `json:"scrip_dividend"`
	ScripDividendYield       float64 `json:"scrip_dividend_yield"`
	BuybackYield             float64 `json:"buyback_yield"`
	PreferentialSharesStaker float64 `json:"preferential_shares_staker"`
	OrdinarySharesStaker     float64 `json:"ordinary_shares_staker"`
	ParticipantDilution      float64 `json:"participant_dilution"`
}

// StakingRecords converts a generic staking dataset into typed records.
func StakingRecords(d *Dataset) ([]StakingRecord, error) {
	if d.ColumnIndex("assets") < 0 {
		return nil, fmt.Errorf("dataset %s: no assets column", d.Name)
	}
	recs := make([]StakingRecord, 0, d.NumRows())
	for i := range d.Rows {
		r := StakingRecord{Asset: d.String(i, "assets")}
		var err error
		if r.StakingMarketcap, err = d.Float(i, "staking_marketcap"); err != nil {
			return nil, err
		}
		if r.NetIssuance, err = d.Float(i, "net_issuance"); err != nil {
			return nil, err
		}
		if r.InflationRate, err = d.Float(i, "inflation_rate"); err != nil {
			return nil, err
		}
		if r.RewardRate, err = d.Float(i, "reward_rate"); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// PriceRecords converts a generic price dataset into typed records.
func PriceRecords(d *Dataset) ([]PriceRecord, error) {
	if d.ColumnIndex("assets") < 0 {
		return nil, fmt.Errorf("dataset %s: no assets column", d.Name)
	}
	recs := make([]PriceRecord, 0, d.NumRows())
	for i := range d.Rows {
		r := PriceRecord{Asset: d.String(i, "assets")}
		var err error
		if r.Price, err = d.Float(i, "price"); err != nil {
			return nil, err
		}
		if r.CirculatingSupply, err = d.Float(i, "circulating_supply"); err != nil {
			return nil, err
		}
		if r.RewardRate, err = d.Float(i, "reward_rate"); err != nil {
			return nil, err
		}
		if r.Earnings, err = d.Float(i, "earnings"); err != nil {
			return nil, err
		}
		if r.EarningsPerShare, err = d.Float(i, "earnings_per_share"); err != nil {
			return nil, err
		}
		if r.PriceToEarnings, err = d.Float(i, "price_to_earnings"); err != nil {
			return nil, err
		}
		// market_cap is optional and unused by the views
		if mc, err := d.Float(i, "market_cap"); err == nil {
			r.MarketCap = mc
		}
		recs = append(recs, r)
	}
	return recs, nil
}
