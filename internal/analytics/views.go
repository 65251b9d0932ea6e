package analytics

import (
	"fmt"

	"cryptometric/internal/loader"
	"cryptometric/internal/model"
)

// StakingView is the render-ready staking page: one formatted table plus a
// bar chart per staking metric.
type StakingView struct {
	Table  TableData     `json:"table"`
	Charts []ChartConfig `json:"charts"`
}

// PriceView is the render-ready price page: the raw/derived metrics split
// into two tables, plus a log-scale bar chart per metric.
type PriceView struct {
	PriceEarnings TableData     `json:"priceEarnings"`
	Shareholder   TableData     `json:"shareholder"`
	Charts        []ChartConfig `json:"charts"`
}

// stakingMetrics are the chartable columns of the staking dataset, in order.
var stakingMetrics = []string{
	"staking_marketcap", "net_issuance", "inflation_rate", "reward_rate",
}

// BuildStakingView renders the staking records.
// Marketcap and issuance are shown in billions of dollars, the rates as
// percentages; charts carry the unformatted values.
func BuildStakingView(recs []model.StakingRecord) StakingView {
	assets := make([]string, len(recs))
	for i, r := range recs {
		assets[i] = r.Asset
	}
	colors := AssetColors(assets)

	table := TableData{
		Title: "Staking Metrics Data",
		Columns: []TableColumn{
			{Key: "assets", Label: "Assets", Align: "left"},
			{Key: "staking_marketcap", Label: "Staking Marketcap", Align: "right"},
			{Key: "net_issuance", Label: "Net Issuance", Align: "right"},
			{Key: "inflation_rate", Label: "Inflation Rate", Align: "right"},
			{Key: "reward_rate", Label: "Reward Rate", Align: "right"},
		},
	}
	for _, r := range recs {
		table.Rows = append(table.Rows, []string{
			r.Asset,
			FormatBillionsUSD(r.StakingMarketcap),
			FormatBillionsUSD(r.NetIssuance),
			FormatPercent(r.InflationRate),
			FormatPercent(r.RewardRate),
		})
	}

	raw := func(r model.StakingRecord, metric string) float64 {
		switch metric {
		case "staking_marketcap":
			return r.StakingMarketcap
		case "net_issuance":
			return r.NetIssuance
		case "inflation_rate":
			return r.InflationRate
		default:
			return r.RewardRate
		}
	}

	charts := make([]ChartConfig, 0, len(stakingMetrics))
	for _, metric := range stakingMetrics {
		values := make([]float64, len(recs))
		for i, r := range recs {
			values[i] = raw(r, metric)
		}
		charts = append(charts, barComparison(metric, assets, values, colors, false))
	}

	return StakingView{Table: table, Charts: charts}
}

// priceMetric is one column of the price view: source label, formatting key
// and value accessor over (record, derived metrics).
type priceMetric struct {
	label string
	value func(model.PriceRecord, model.AssetMetrics) float64
}

var priceEarningsMetrics = []priceMetric{
	{"price", func(r model.PriceRecord, _ model.AssetMetrics) float64 { return r.Price }},
	{"circulating_supply", func(r model.PriceRecord, _ model.AssetMetrics) float64 { return r.CirculatingSupply }},
	{"reward_rate", func(r model.PriceRecord, _ model.AssetMetrics) float64 { return r.RewardRate }},
	{"Earnings", func(r model.PriceRecord, _ model.AssetMetrics) float64 { return r.Earnings }},
	{"earnings_per_share", func(r model.PriceRecord, _ model.AssetMetrics) float64 { return r.EarningsPerShare }},
	{"price_to_earnings", func(r model.PriceRecord, _ model.AssetMetrics) float64 { return r.PriceToEarnings }},
}

// The shareholder table drops "Ordinary Shares Staker": its ratio form is
// not comparable to the yield columns shown next to it.
var shareholderMetrics = []priceMetric{
	{"Cash Dividend", func(_ model.PriceRecord, m model.AssetMetrics) float64 { return m.CashDividend }},
	{"Cash Dividend Yield", func(_ model.PriceRecord, m model.AssetMetrics) float64 { return m.CashDividendYield }},
	{"Preferential Shares Staker", func(_ model.PriceRecord, m model.AssetMetrics) float64 { return m.PreferentialSharesStaker }},
	{"Scrip Dividend", func(_ model.PriceRecord, m model.AssetMetrics) float64 { return m.ScripDividend }},
	{"Scrip Dividend Yield", func(_ model.PriceRecord, m model.AssetMetrics) float64 { return m.ScripDividendYield }},
	{"Participant Dilution", func(_ model.PriceRecord, m model.AssetMetrics) float64 { return m.ParticipantDilution }},
}

// BuildPriceView renders the price records: formatted tables for display and
// one log-scale bar chart per metric built from the unformatted values.
// A row whose numbers make the derived metrics undefined fails the whole
// view with the asset named in the error.
func BuildPriceView(recs []model.PriceRecord, p Params) (PriceView, error) {
	// One row per asset; first occurrence wins on duplicates.
	seen := make(map[string]bool, len(recs))
	rows := make([]model.PriceRecord, 0, len(recs))
	for _, r := range recs {
		if seen[r.Asset] {
			continue
		}
		seen[r.Asset] = true
		rows = append(rows, r)
	}

	assets := make([]string, len(rows))
	derived := make([]model.AssetMetrics, len(rows))
	for i, r := range rows {
		assets[i] = r.Asset
		m, err := Calculate(r.Price, r.CirculatingSupply, r.Earnings, p)
		if err != nil {
			return PriceView{}, fmt.Errorf("asset %s: %w", r.Asset, err)
		}
		derived[i] = m
	}
	colors := AssetColors(assets)

	buildTable := func(title string, metrics []priceMetric) TableData {
		t := TableData{Title: title}
		t.Columns = append(t.Columns, TableColumn{Key: "asset", Label: "Asset", Align: "left"})
		for _, m := range metrics {
			t.Columns = append(t.Columns, TableColumn{
				Key:   loader.ToSnakeCase(m.label),
				Label: m.label,
				Align: "right",
			})
		}
		for i, r := range rows {
			row := []string{r.Asset}
			for _, m := range metrics {
				row = append(row, FormatValue(m.value(r, derived[i]), m.label))
			}
			t.Rows = append(t.Rows, row)
		}
		return t
	}

	view := PriceView{
		PriceEarnings: buildTable("Price and Earnings Metrics", priceEarningsMetrics),
		Shareholder:   buildTable("Shareholder and Dilution Metrics", shareholderMetrics),
	}

	allMetrics := append(append([]priceMetric{}, priceEarningsMetrics...), shareholderMetrics...)
	for _, m := range allMetrics {
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = m.value(r, derived[i])
		}
		view.Charts = append(view.Charts, barComparison(m.label, assets, values, colors, true))
	}

	return view, nil
}

// StakingViewFromDataset builds the staking view straight from a loaded dataset.
func StakingViewFromDataset(ds *model.Dataset) (StakingView, error) {
	recs, err := model.StakingRecords(ds)
	if err != nil {
		return StakingView{}, err
	}
	return BuildStakingView(recs), nil
}

// PriceViewFromDataset builds the price view straight from a loaded dataset.
func PriceViewFromDataset(ds *model.Dataset, p Params) (PriceView, error) {
	recs, err := model.PriceRecords(ds)
	if err != nil {
		return PriceView{}, err
	}
	return BuildPriceView(recs, p)
}
