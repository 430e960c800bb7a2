// Package tracker values a portfolio of stock holdings over a lookback window
// and compares it to a benchmark index.
//
// The core functionalities include:
//   - Holdings: a Portfolio is an ordered list of validated Holding, stored
//     as JSONL, one holding per line.
//   - Market Data: a Gateway returns daily closing prices for a symbol. The
//     yahoo and eodhd packages implement it over HTTP, MemoryGateway in memory.
//   - Valuation: an Engine fetches every price history concurrently, aligns
//     them on the benchmark trading calendar and computes the portfolio value
//     series, the per holding rows and the KPIs. Money amounts are exact.
//   - Symbols: a Directory resolves company names and NSE symbols from the
//     NIFTY 500 constituents list.
//
// This package serves as the foundational logic for the `pft` command-line
// tool.
package tracker
