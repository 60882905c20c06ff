package fmp

import "github.com/google/jsonschema-go/jsonschema"

func (r *Registry) catalogue() []*Operation {
	return []*Operation{
		newOperation("get_quote",
			"Get real-time stock quote for a symbol (e.g., AAPL, TSLA, MSFT)",
			objectSchema([]string{"symbol"}, symbolProp("Stock ticker symbol (e.g., AAPL)")),
			func(a *SymbolArgs) string {
				return newEndpoint("/quote").set("symbol", normalizeSymbol(a.Symbol)).String()
			}),

		newOperation("search_symbol",
			"Search for stock symbols by company name or ticker",
			objectSchema([]string{"query"}, stringProp("query", "Search query (company name or ticker)")),
			func(a *SearchArgs) string {
				return newEndpoint("/search-symbol").set("query", a.Query).set("limit", "10").String()
			}),

		newOperation("get_company_profile",
			"Get detailed company profile information including description, industry, sector, CEO, and more",
			objectSchema([]string{"symbol"}, symbolProp("Stock ticker symbol")),
			func(a *SymbolArgs) string {
				return newEndpoint("/profile").set("symbol", normalizeSymbol(a.Symbol)).String()
			}),

		statementOperation("get_income_statement", "/income-statement",
			"Get company income statement (annual or quarterly)"),
		statementOperation("get_balance_sheet", "/balance-sheet-statement",
			"Get company balance sheet statement (annual or quarterly)"),
		statementOperation("get_cash_flow", "/cash-flow-statement",
			"Get company cash flow statement (annual or quarterly)"),

		newOperation("get_stock_news",
			"Get latest news articles for a stock symbol",
			objectSchema([]string{"symbol"},
				symbolProp("Stock ticker symbol"),
				numberProp("limit", "Number of articles to return (default: 10)"),
			),
			func(a *NewsArgs) string {
				return newEndpoint("/news/stock").
					set("symbols", normalizeSymbol(a.Symbol)).
					setNumber("limit", a.Limit).
					String()
			}),

		fixedOperation("get_market_gainers", "/biggest-gainers",
			"Get stocks with the largest price increases (top gainers)"),
		fixedOperation("get_market_losers", "/biggest-losers",
			"Get stocks with the largest price drops (top losers)"),
		fixedOperation("get_most_active", "/most-actives",
			"Get most actively traded stocks by volume"),

		newOperation("get_sector_performance",
			"Get current sector performance snapshot",
			objectSchema(nil, stringProp("date", "Date in YYYY-MM-DD format (optional, defaults to latest)")),
			func(a *DateArgs) string {
				date := a.Date
				if date == "" {
					date = r.today()
				}
				return newEndpoint("/sector-performance-snapshot").set("date", date).String()
			}),

		newOperation("get_analyst_estimates",
			"Get analyst financial estimates for a stock (revenue, EPS forecasts)",
			objectSchema([]string{"symbol"},
				symbolProp("Stock ticker symbol"),
				periodProp(),
				numberProp("limit", "Number of periods to return (default: 10)"),
			),
			func(a *EstimateArgs) string {
				return newEndpoint("/analyst-estimates").
					set("symbol", normalizeSymbol(a.Symbol)).
					set("period", a.Period).
					setNumber("limit", a.Limit).
					String()
			}),

		symbolOperation("get_price_target", "/price-target-summary",
			"Get analyst price target summary for a stock"),
		symbolOperation("get_analyst_ratings", "/grades",
			"Get analyst ratings and upgrades/downgrades for a stock"),

		ownershipOperation("get_insider_trading", "/insider-trading/search",
			"Get recent insider trading activity for a stock",
			"Number of transactions to return (default: 100)"),

		statementOperation("get_key_metrics", "/key-metrics",
			"Get key financial metrics (P/E, ROE, debt ratios, etc.)"),
		statementOperation("get_financial_ratios", "/ratios",
			"Get detailed financial ratios (profitability, liquidity, efficiency)"),

		calendarOperation("get_earnings_calendar", "/earnings-calendar",
			"Get upcoming earnings announcements calendar"),
		calendarOperation("get_economic_calendar", "/economic-calendar",
			"Get upcoming economic data releases calendar"),

		newOperation("get_economic_indicator",
			"Get economic indicator data (GDP, unemployment, inflation, etc.)",
			objectSchema([]string{"name"},
				stringProp("name", "Indicator name (e.g., GDP, unemploymentRate, CPI)"),
				fromProp(),
				toProp(),
			),
			func(a *IndicatorArgs) string {
				return newEndpoint("/economic-indicators").
					set("name", a.Name).
					setOptional("from", a.From).
					setOptional("to", a.To).
					String()
			}),

		newOperation("get_technical_indicator_rsi",
			"Get Relative Strength Index (RSI) technical indicator",
			technicalSchema("Period length (default: 14)"),
			func(a *RSIArgs) string {
				return technicalEndpoint("rsi", a.Symbol, a.Timeframe, a.Period)
			}),
		newOperation("get_technical_indicator_sma",
			"Get Simple Moving Average (SMA) technical indicator",
			technicalSchema("Period length (default: 10)"),
			func(a *MovingAverageArgs) string {
				return technicalEndpoint("sma", a.Symbol, a.Timeframe, a.Period)
			}),
		newOperation("get_technical_indicator_ema",
			"Get Exponential Moving Average (EMA) technical indicator",
			technicalSchema("Period length (default: 10)"),
			func(a *MovingAverageArgs) string {
				return technicalEndpoint("ema", a.Symbol, a.Timeframe, a.Period)
			}),

		newOperation("get_historical_chart",
			"Get historical price data with flexible time intervals",
			objectSchema([]string{"symbol", "interval"},
				symbolProp("Stock ticker symbol"),
				enumProp("interval", "Time interval (1min, 5min, 15min, 30min, 1hour, 4hour)", intervals),
				fromProp(),
				toProp(),
			),
			func(a *ChartArgs) string {
				return newEndpoint("/historical-chart", a.Interval).
					set("symbol", normalizeSymbol(a.Symbol)).
					setOptional("from", a.From).
					setOptional("to", a.To).
					String()
			}),

		ownershipOperation("get_institutional_holders", "/institutional-ownership/latest",
			"Get institutional ownership (13F filings) for a stock",
			"Number of holders to return (default: 100)"),

		fixedOperation("get_sp500_constituents", "/sp500-constituent",
			"Get list of S&P 500 index constituents"),
	}
}

func fixedOperation(name, path, description string) *Operation {
	return newOperation(name, description, objectSchema(nil),
		func(*NoArgs) string {
			return path
		})
}

func symbolOperation(name, path, description string) *Operation {
	return newOperation(name, description,
		objectSchema([]string{"symbol"}, symbolProp("Stock ticker symbol")),
		func(a *SymbolArgs) string {
			return newEndpoint(path).set("symbol", normalizeSymbol(a.Symbol)).String()
		})
}

func statementOperation(name, path, description string) *Operation {
	return newOperation(name, description,
		objectSchema([]string{"symbol"},
			symbolProp("Stock ticker symbol"),
			periodProp(),
			numberProp("limit", "Number of periods to return (default: 5)"),
		),
		func(a *StatementArgs) string {
			return newEndpoint(path).
				set("symbol", normalizeSymbol(a.Symbol)).
				set("period", a.Period).
				setNumber("limit", a.Limit).
				String()
		})
}

func ownershipOperation(name, path, description, limitDescription string) *Operation {
	return newOperation(name, description,
		objectSchema([]string{"symbol"},
			symbolProp("Stock ticker symbol"),
			numberProp("limit", limitDescription),
		),
		func(a *OwnershipArgs) string {
			return newEndpoint(path).
				set("symbol", normalizeSymbol(a.Symbol)).
				setNumber("limit", a.Limit).
				String()
		})
}

func calendarOperation(name, path, description string) *Operation {
	return newOperation(name, description,
		objectSchema(nil, fromProp(), toProp()),
		func(a *DateRangeArgs) string {
			return newEndpoint(path).
				setOptional("from", a.From).
				setOptional("to", a.To).
				String()
		})
}

func technicalSchema(periodDescription string) *jsonschema.Schema {
	return objectSchema([]string{"symbol", "timeframe"},
		symbolProp("Stock ticker symbol"),
		timeframeProp(),
		numberProp("period", periodDescription),
	)
}

func technicalEndpoint(kind, symbol, timeframe string, period float64) string {
	return newEndpoint("/technical-indicators", kind).
		set("symbol", normalizeSymbol(symbol)).
		set("timeframe", timeframe).
		setNumber("periodLength", period).
		String()
}
