package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openfiling/ctcalc/internal/calculation"
	"github.com/openfiling/ctcalc/internal/config"
	"github.com/openfiling/ctcalc/internal/mapper"
	"github.com/openfiling/ctcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "ctcalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "ctcalc",
	Short: "UK Corporation Tax calculator",
	Long:  "Computes a company's corporation tax liability for an accounting period, including period splitting, marginal relief, AIA and loss relief",
}

// buildEngine creates the calculation engine, overlaying a tax year
// override file on the built-in table when one is given.
func buildEngine(taxYearFile string) (*calculation.Engine, error) {
	if taxYearFile == "" {
		return calculation.NewEngine(), nil
	}
	overrides, err := config.LoadTaxYearsFromFile(taxYearFile)
	if err != nil {
		return nil, err
	}
	merged := config.MergeTaxYears(calculation.NewEngine().TaxYears(), overrides)
	return calculation.NewEngineWithTaxYears(merged)
}

var computeCmd = &cobra.Command{
	Use:   "compute [input-file]",
	Short: "Compute corporation tax for an accounting period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		taxYearFile, _ := cmd.Flags().GetString("tax-years")
		verbose, _ := cmd.Flags().GetBool("verbose")

		parser := config.NewInputParser()
		raw, err := parser.LoadRawFromFile(args[0])
		if err != nil {
			return err
		}

		engine, err := buildEngine(taxYearFile)
		if err != nil {
			return err
		}

		run, err := engine.Run(raw)
		if err != nil {
			return err
		}

		generator := output.NewReportGenerator()
		generator.Verbose = verbose
		return generator.GenerateReport(os.Stdout, run, format)
	},
}

var ct600Cmd = &cobra.Command{
	Use:   "ct600 [input-file]",
	Short: "Compute corporation tax and print CT600 box values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxYearFile, _ := cmd.Flags().GetString("tax-years")

		parser := config.NewInputParser()
		raw, err := parser.LoadRawFromFile(args[0])
		if err != nil {
			return err
		}

		engine, err := buildEngine(taxYearFile)
		if err != nil {
			return err
		}

		run, err := engine.Run(raw)
		if err != nil {
			return err
		}

		ret := mapper.MapCT600(run)
		boxes := ret.BoxValues()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Box\tValue")
		for _, box := range ret.BoxNumbers() {
			fmt.Fprintf(w, "%s\t%s\n", box, boxes[box])
		}
		return w.Flush()
	},
}

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Print the legacy-to-canonical input field crosswalk",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Legacy name\tCanonical field")
		for _, row := range config.AliasTable() {
			fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
		}
		w.Flush()
	},
}

func main() {
	computeCmd.Flags().String("format", "console", "Output format: console, json, csv, yaml")
	computeCmd.Flags().String("tax-years", "", "YAML file of tax year reference table overrides")
	computeCmd.Flags().Bool("verbose", false, "Include per-period detail in console output")
	ct600Cmd.Flags().String("tax-years", "", "YAML file of tax year reference table overrides")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(ct600Cmd)
	rootCmd.AddCommand(aliasesCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
