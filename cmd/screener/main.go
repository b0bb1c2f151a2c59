// Package main - screener CLI entry point.
//
// Usage:
//
//	go run ./cmd/screener analyze AAPL MSFT XOM
//	go run ./cmd/screener serve
package main

import (
	"os"

	"equity_screener/cmd/screener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
