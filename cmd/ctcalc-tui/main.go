package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openfiling/ctcalc/internal/calculation"
	"github.com/openfiling/ctcalc/internal/config"
	"github.com/openfiling/ctcalc/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ctcalc-tui <input-file> [tax-year-file]")
		os.Exit(1)
	}
	inputPath := os.Args[1]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fmt.Printf("Error: input file not found: %s\n", inputPath)
		os.Exit(1)
	}

	engine := calculation.NewEngine()
	if len(os.Args) > 2 {
		overrides, err := config.LoadTaxYearsFromFile(os.Args[2])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		engine, err = calculation.NewEngineWithTaxYears(
			config.MergeTaxYears(engine.TaxYears(), overrides))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(inputPath, engine),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
