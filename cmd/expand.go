package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpryce/ttedit/internal/app"
	"github.com/mpryce/ttedit/internal/config"
	"github.com/mpryce/ttedit/internal/dialog"
	"github.com/mpryce/ttedit/internal/series"
	"github.com/mpryce/ttedit/internal/service"
)

var expandWritable bool

var expandCmd = &cobra.Command{
	Use:   "expand <series-id>",
	Short: "Expand a series and print its events",
	Long: `Expand fetches a series' event list the way the web panel does on
first expansion and prints the events. With --writable the fragment includes
the series' save endpoint.

Examples:
  # List a series' events
  ttedit expand algorithms-1a

  # Fetch the editable representation
  ttedit expand algorithms-1a --writable`,
	Args: cobra.ExactArgs(1),
	Run:  runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().BoolVarP(&expandWritable, "writable", "w", false,
		"Request the editable event representation")
}

func runExpand(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ser, _, err := loadSeries(ctx, args[0], expandWritable)
	if err != nil {
		log.Fatalf("Failed to load series: %v", err)
	}

	printSeries(ser)
	if expandWritable {
		fmt.Printf("\nsave path: %s\n", ser.SavePath())
	}
}

// loadSeries wires a client and expansion controller for one series and
// blocks until the fetch completes.
func loadSeries(ctx context.Context, seriesID string, writable bool) (*series.Series, *series.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	client := service.NewClient(cfg.BaseURL, cfg.CSRFToken, cfg.SessionCookie, logger)
	dialogs := dialog.NewManager(noopHost{})

	loaded := make(chan *series.Series, 1)
	failed := make(chan series.State, 1)

	ctl := series.NewController(series.Config{
		SeriesID: seriesID,
		Writable: writable,
		Loader:   client,
		Saver:    client,
		Dialogs:  dialogs,
		Logger:   logger,
		Hooks: series.Hooks{
			StateChanged: func(st series.State) {
				if st == series.LoadFailed {
					failed <- st
				}
			},
			SeriesLoaded: func(s *series.Series) {
				loaded <- s
			},
		},
	})

	ctl.Expand(ctx)

	select {
	case s := <-loaded:
		return s, ctl, nil
	case <-failed:
		return nil, nil, fmt.Errorf("fetch failed for series %s", seriesID)
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

func printSeries(ser *series.Series) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tTYPE\tPEOPLE\tWEEK\tTERM\tDAY\tTIME")
	for _, sess := range ser.Sessions() {
		e := sess.Current()
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s:%s-%s:%s\n",
			e.ID, e.Title, e.Location, e.Type, e.People,
			e.Week, e.PrettyTerm(), e.PrettyDay(),
			e.StartHour, e.StartMinute, e.EndHour, e.EndMinute)
	}
	w.Flush()
}

// noopHost satisfies dialog.Host for the headless CLI; there is no backdrop
// to draw.
type noopHost struct{}

func (noopHost) InsertBackdrop(func()) func() { return func() {} }
