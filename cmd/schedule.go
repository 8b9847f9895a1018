package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgubran1/dispatchgrid/app"
	"github.com/mgubran1/dispatchgrid/config"
	"github.com/mgubran1/dispatchgrid/core/schedule"
	"github.com/mgubran1/dispatchgrid/pkg/export"
)

var (
	scheduleDate    string
	scheduleFormat  string
	scheduleSummary bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Build one day's schedule and print it",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "schedule date (YYYY-MM-DD, default today)")
	scheduleCmd.Flags().StringVar(&scheduleFormat, "format", "csv", "output format: csv or json")
	scheduleCmd.Flags().BoolVar(&scheduleSummary, "summary", false, "print summary counters instead of events")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	date := time.Now()
	if scheduleDate != "" {
		date, err = time.ParseInLocation("2006-01-02", scheduleDate, time.Local)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	events, err := svc.Schedule(date)
	if err != nil {
		return err
	}
	events = schedule.Sort(events)

	if scheduleSummary {
		return export.WriteSummaryCSV(os.Stdout, schedule.Summarize(events))
	}
	switch scheduleFormat {
	case "csv":
		return export.WriteCSV(os.Stdout, events)
	case "json":
		return export.WriteJSON(os.Stdout, events)
	default:
		return fmt.Errorf("unknown format %q", scheduleFormat)
	}
}
