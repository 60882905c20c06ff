package fmp

// 各类操作的参数, `default` 标签只作用于调用方未提供的字段

type NoArgs struct{}

type SymbolArgs struct {
	Symbol string `json:"symbol"`
}

type SearchArgs struct {
	Query string `json:"query"`
}

type StatementArgs struct {
	Symbol string  `json:"symbol"`
	Period string  `json:"period" default:"annual"`
	Limit  float64 `json:"limit" default:"5"`
}

type EstimateArgs struct {
	Symbol string  `json:"symbol"`
	Period string  `json:"period" default:"annual"`
	Limit  float64 `json:"limit" default:"10"`
}

type NewsArgs struct {
	Symbol string  `json:"symbol"`
	Limit  float64 `json:"limit" default:"10"`
}

type OwnershipArgs struct {
	Symbol string  `json:"symbol"`
	Limit  float64 `json:"limit" default:"100"`
}

type DateArgs struct {
	Date string `json:"date"`
}

type DateRangeArgs struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type IndicatorArgs struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

type RSIArgs struct {
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	Period    float64 `json:"period" default:"14"`
}

type MovingAverageArgs struct {
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	Period    float64 `json:"period" default:"10"`
}

type ChartArgs struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	From     string `json:"from"`
	To       string `json:"to"`
}
