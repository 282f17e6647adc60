package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var snapshotRoute string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the most recent realtime snapshot",
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotRoute, "route", "r", "", "only show updates for this route")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}
	defer p.store.Close()

	updates, err := p.store.Snapshot()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROUTE\tTRIP\tDIRECTION\tSTOP\tARRIVAL\tDEPARTURE")
	for _, u := range updates {
		if snapshotRoute != "" && u.RouteID != snapshotRoute {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			u.RouteID, u.TripID, u.TrackDirection, u.StopName, u.ArrivalTime, u.DepartureTime)
	}
	return w.Flush()
}
