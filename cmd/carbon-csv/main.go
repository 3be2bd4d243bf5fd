// Package main provides the entry point for the carbon-csv CLI application.
package main

import (
	"ecolens/carbon-csv/cmd/analyze"
	"ecolens/carbon-csv/cmd/benchmark"
	"ecolens/carbon-csv/cmd/calculate"
	"ecolens/carbon-csv/cmd/factors"
	"ecolens/carbon-csv/cmd/history"
	"ecolens/carbon-csv/cmd/root"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(calculate.Cmd)
	root.Cmd.AddCommand(benchmark.Cmd)
	root.Cmd.AddCommand(factors.Cmd)
	root.Cmd.AddCommand(history.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Fatal(err)
	}
}
