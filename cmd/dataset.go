package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/subwaylabs/traintrack"
)

var datasetOut string

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Assemble recorded observations into a training dataset",
	Long: "Reads the accumulated observation history, reconciles each stop event " +
		"against the static schedule and writes the resulting rows as CSV.",
	RunE: runDataset,
}

func init() {
	datasetCmd.Flags().StringVarP(&datasetOut, "out", "o", "", "output CSV path (default stdout)")
}

func runDataset(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}
	defer p.store.Close()

	assembler := &traintrack.Assembler{
		Static: p.static,
		Store:  p.store,
	}

	rows, report, err := assembler.Assemble()
	if err != nil {
		return err
	}

	out := os.Stdout
	if datasetOut != "" {
		out, err = os.Create(datasetOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", datasetOut, err)
		}
		defer out.Close()
	}

	if err := traintrack.WriteCSV(out, rows); err != nil {
		return err
	}

	log.Printf("assembled %d rows from %d observations", report.Rows, report.Input)
	if dropped := report.Input - report.Rows; dropped > 0 {
		log.Printf("dropped %d: %d unresolved service, %d unmatched, %d ambiguous, %d missing stop times, %d unparseable, %d implausible",
			dropped, report.UnresolvedService, report.UnmatchedTrips, report.AmbiguousTrips,
			report.MissingStopTimes, report.UnparseableTimes, report.ImplausibleDelays)
	}
	return nil
}
