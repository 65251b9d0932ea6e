package analytics

// Render-ready output shapes. The browser page and any other client render
// these as-is; no server-side state survives a request.

// TableColumn defines one table column.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"` // "left", "right"
}

// TableData defines how to render a table.
type TableData struct {
	Title   string        `json:"title"`
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
}

// ChartPoint is a single labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is one series in a chart. For per-asset bar comparisons each
// asset is its own single-point series so it gets a stable color and legend
// entry.
type ChartSeries struct {
	Name  string       `json:"name"`
	Color string       `json:"color,omitempty"`
	Data  []ChartPoint `json:"data"`
}

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
	LogScale   bool          `json:"logScale,omitempty"`
}

// Ten-color qualitative palette; assets cycle through it in first-seen order.
var palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// AssetColors assigns each asset a palette color by position.
func AssetColors(assets []string) map[string]string {
	m := make(map[string]string, len(assets))
	for i, a := range assets {
		m[a] = palette[i%len(palette)]
	}
	return m
}

// barComparison builds one bar chart comparing a metric across assets.
func barComparison(metric string, assets []string, values []float64, colors map[string]string, logScale bool) ChartConfig {
	title := MetricTitle(metric)
	series := make([]ChartSeries, 0, len(assets))
	for i, a := range assets {
		series = append(series, ChartSeries{
			Name:  a,
			Color: colors[a],
			Data:  []ChartPoint{{Label: a, Value: values[i]}},
		})
	}
	return ChartConfig{
		ChartType:  "bar",
		Title:      title + " Comparison between Assets",
		XAxis:      "Asset",
		YAxis:      title,
		Series:     series,
		ShowLegend: true,
		ShowGrid:   true,
		LogScale:   logScale,
	}
}
