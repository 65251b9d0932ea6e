package analytics

import (
	"strings"
	"testing"

	"cryptometric/internal/model"
)

func stakingFixture() []model.StakingRecord {
	return []model.StakingRecord{
		{Asset: "ETH", StakingMarketcap: 112500000000, NetIssuance: 2600000000, InflationRate: 0.0051, RewardRate: 0.0345},
		{Asset: "SOL", StakingMarketcap: 54300000000, NetIssuance: 3900000000, InflationRate: 0.0512, RewardRate: 0.0702},
	}
}

func priceFixture() []model.PriceRecord {
	return []model.PriceRecord{
		{Asset: "ETH", Price: 3421.5, CirculatingSupply: 120250000, RewardRate: 0.0345,
			Earnings: 2711000000, EarningsPerShare: 22.54, PriceToEarnings: 151.8},
		{Asset: "SOL", Price: 162.3, CirculatingSupply: 467800000, RewardRate: 0.0702,
			Earnings: 1240000000, EarningsPerShare: 2.65, PriceToEarnings: 61.2},
	}
}

func TestBuildStakingView(t *testing.T) {
	view := BuildStakingView(stakingFixture())

	if got := len(view.Table.Rows); got != 2 {
		t.Fatalf("table rows = %d, want 2", got)
	}
	wantRow := []string{"ETH", "$112.5B", "$2.6B", "0.51%", "3.45%"}
	for i, want := range wantRow {
		if view.Table.Rows[0][i] != want {
			t.Errorf("row[0][%d] = %q, want %q", i, view.Table.Rows[0][i], want)
		}
	}

	if got := len(view.Charts); got != 4 {
		t.Fatalf("charts = %d, want 4 (one per staking metric)", got)
	}
	first := view.Charts[0]
	if first.Title != "Staking marketcap Comparison between Assets" {
		t.Errorf("chart title = %q", first.Title)
	}
	if first.LogScale {
		t.Error("staking charts must not be log scale")
	}
	if len(first.Series) != 2 {
		t.Fatalf("series = %d, want one per asset", len(first.Series))
	}
	if first.Series[0].Name != "ETH" || first.Series[1].Name != "SOL" {
		t.Errorf("series names = %q, %q", first.Series[0].Name, first.Series[1].Name)
	}
	if first.Series[0].Color == "" || first.Series[0].Color == first.Series[1].Color {
		t.Error("assets must get distinct palette colors")
	}
	if first.Series[0].Data[0].Value != 112500000000 {
		t.Errorf("chart carries %v, want the unformatted value", first.Series[0].Data[0].Value)
	}
}

func TestBuildPriceView(t *testing.T) {
	view, err := BuildPriceView(priceFixture(), DefaultParams())
	if err != nil {
		t.Fatalf("BuildPriceView: %v", err)
	}

	if view.PriceEarnings.Title != "Price and Earnings Metrics" {
		t.Errorf("title = %q", view.PriceEarnings.Title)
	}
	if view.Shareholder.Title != "Shareholder and Dilution Metrics" {
		t.Errorf("title = %q", view.Shareholder.Title)
	}
	if got := len(view.PriceEarnings.Columns); got != 7 {
		t.Errorf("price/earnings columns = %d, want 7", got)
	}
	if got := len(view.Shareholder.Columns); got != 7 {
		t.Errorf("shareholder columns = %d, want 7", got)
	}

	// the raw price column is dollar-formatted
	if got := view.PriceEarnings.Rows[0][1]; got != "$3,421.500" {
		t.Errorf("price cell = %q, want $3,421.500", got)
	}

	// column keys follow the loader's header normalization
	if got := view.Shareholder.Columns[1].Key; got != "cash_dividend" {
		t.Errorf("shareholder key = %q, want cash_dividend", got)
	}

	// "Ordinary Shares Staker" is computed but never displayed
	for _, c := range view.Shareholder.Columns {
		if strings.Contains(c.Label, "Ordinary Shares Staker") {
			t.Error("shareholder table must not show Ordinary Shares Staker")
		}
	}
	for _, c := range view.Charts {
		if strings.Contains(c.Title, "Ordinary shares staker") {
			t.Error("charts must not include Ordinary Shares Staker")
		}
	}

	if got := len(view.Charts); got != 12 {
		t.Fatalf("charts = %d, want 12 (6 source + 6 derived metrics)", got)
	}
	for _, c := range view.Charts {
		if !c.LogScale {
			t.Errorf("chart %q must be log scale", c.Title)
		}
		if len(c.Series) != 2 {
			t.Errorf("chart %q series = %d, want 2", c.Title, len(c.Series))
		}
	}
}

func TestBuildPriceViewDeduplicatesAssets(t *testing.T) {
	recs := append(priceFixture(), priceFixture()[0]) // ETH twice
	view, err := BuildPriceView(recs, DefaultParams())
	if err != nil {
		t.Fatalf("BuildPriceView: %v", err)
	}
	if got := len(view.PriceEarnings.Rows); got != 2 {
		t.Errorf("rows = %d, want 2 (first occurrence per asset wins)", got)
	}
}

func TestBuildPriceViewZeroEarnings(t *testing.T) {
	recs := priceFixture()
	recs[1].Earnings = 0
	_, err := BuildPriceView(recs, DefaultParams())
	if err == nil {
		t.Fatal("want error for a zero-earnings row")
	}
	if !strings.Contains(err.Error(), "SOL") {
		t.Errorf("error should name the offending asset: %v", err)
	}
}

func TestAssetColorsCycle(t *testing.T) {
	assets := make([]string, 12)
	for i := range assets {
		assets[i] = string(rune('A' + i))
	}
	colors := AssetColors(assets)
	if colors["A"] != colors["K"] {
		t.Error("palette should cycle after 10 assets")
	}
	if colors["A"] == colors["B"] {
		t.Error("adjacent assets should differ")
	}
}

func TestViewsFromDataset(t *testing.T) {
	ds := &model.Dataset{
		Name: "staking_data",
		Columns: []model.Column{
			{Key: "assets", Label: "assets", Kind: model.KindText},
			{Key: "staking_marketcap", Label: "staking_marketcap", Kind: model.KindNumber},
			{Key: "net_issuance", Label: "net_issuance", Kind: model.KindNumber},
			{Key: "inflation_rate", Label: "inflation_rate", Kind: model.KindNumber},
			{Key: "reward_rate", Label: "reward_rate", Kind: model.KindNumber},
		},
		Rows: [][]model.Value{{
			{Raw: "ETH"},
			{Raw: "112500000000", Num: 112500000000, Numeric: true},
			{Raw: "2600000000", Num: 2600000000, Numeric: true},
			{Raw: "0.0051", Num: 0.0051, Numeric: true},
			{Raw: "0.0345", Num: 0.0345, Numeric: true},
		}},
	}
	view, err := StakingViewFromDataset(ds)
	if err != nil {
		t.Fatalf("StakingViewFromDataset: %v", err)
	}
	if len(view.Table.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(view.Table.Rows))
	}

	// a dataset missing required columns fails the render
	bad := &model.Dataset{
		Name:    "staking_data",
		Columns: []model.Column{{Key: "assets", Label: "assets", Kind: model.KindText}},
		Rows:    [][]model.Value{{{Raw: "ETH"}}},
	}
	if _, err := StakingViewFromDataset(bad); err == nil {
		t.Error("want error for dataset without staking columns")
	}
}
