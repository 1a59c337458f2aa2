package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpryce/ttedit/internal/model"
	"github.com/mpryce/ttedit/internal/series"
	"github.com/mpryce/ttedit/internal/session"
	"github.com/mpryce/ttedit/internal/timerange"
)

var saveSets []string

var saveCmd = &cobra.Command{
	Use:   "save <series-id>",
	Short: "Apply field edits to a series and batch-save them",
	Long: `Save loads a series' editable events, applies the given edits, and
submits every event back in one combined request, exactly as the web panel's
save button does. Time and week edits go through the same consistency rules
as the time dialog: moving the start drags the end with it, the range is
clamped to 0:00-24:00, and unparseable numbers are reverted.

Edits take the form <index>:<field>=<value>, where index counts events from
0 and field is one of title, location, type, people, week, term, day,
start-hour, start-minute, end-hour, end-minute.

Examples:
  # Rename the first event and move its start to 14:00
  ttedit save algorithms-1a --set 0:title="Revision lecture" --set 0:start-hour=14`,
	Args: cobra.ExactArgs(1),
	Run:  runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringArrayVarP(&saveSets, "set", "s", nil,
		"Field edit as <index>:<field>=<value> (repeatable)")
}

func runSave(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ser, _, err := loadSeries(ctx, args[0], true)
	if err != nil {
		log.Fatalf("Failed to load series: %v", err)
	}

	sessions := ser.Sessions()
	for _, raw := range saveSets {
		if err := applyEdit(sessions, raw); err != nil {
			log.Fatalf("Bad --set %q: %v", raw, err)
		}
	}

	phases := make(chan series.SavePhase, 4)
	if _, err := ser.Save(ctx, series.SaveHooks{
		PhaseChanged: func(p series.SavePhase) { phases <- p },
	}); err != nil {
		log.Fatalf("Failed to start save: %v", err)
	}

	for {
		select {
		case p := <-phases:
			switch p {
			case series.SaveSucceeded:
				fmt.Println("saved")
				printSeries(ser)
				return
			case series.SaveFailed:
				log.Fatal("Save failed; local edits kept, retry with the same command")
			}
		case <-ctx.Done():
			log.Fatalf("Save timed out: %v", ctx.Err())
		}
	}
}

// applyEdit parses one <index>:<field>=<value> edit and applies it to the
// matching session.
func applyEdit(sessions []*session.Session, raw string) error {
	idxRaw, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return fmt.Errorf("missing index separator")
	}
	field, value, ok := strings.Cut(rest, "=")
	if !ok {
		return fmt.Errorf("missing value")
	}

	idx, err := strconv.Atoi(idxRaw)
	if err != nil || idx < 0 || idx >= len(sessions) {
		return fmt.Errorf("event index %q out of range", idxRaw)
	}
	sess := sessions[idx]

	switch field {
	case "title":
		sess.Set(func(r *model.EventRecord) { r.Title = value })
	case "location":
		sess.Set(func(r *model.EventRecord) { r.Location = value })
	case "type":
		sess.Set(func(r *model.EventRecord) { r.Type = value })
	case "people":
		sess.Set(func(r *model.EventRecord) { r.People = value })
	case "week", "term", "day", "start-hour", "start-minute", "end-hour", "end-minute":
		applyTimeEdit(sess, field, value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// applyTimeEdit routes week/term/day/time edits through a throwaway
// time-range editor so they obey the dialog's consistency rules.
func applyTimeEdit(sess *session.Session, field, value string) {
	rec := sess.Current()
	ed := timerange.NewEditor(timerange.Values{
		Week:        rec.Week,
		Term:        rec.Term,
		Day:         rec.Day,
		StartHour:   rec.StartHour,
		StartMinute: rec.StartMinute,
		EndHour:     rec.EndHour,
		EndMinute:   rec.EndMinute,
	}, func(vals timerange.Values) {
		sess.Set(func(r *model.EventRecord) {
			r.Week = vals.Week
			r.Term = vals.Term
			r.Day = vals.Day
			r.StartHour = vals.StartHour
			r.StartMinute = vals.StartMinute
			r.EndHour = vals.EndHour
			r.EndMinute = vals.EndMinute
		})
	})

	switch field {
	case "week":
		ed.WeekChanged(value)
	case "term":
		ed.TermChanged(strings.ToLower(value))
	case "day":
		ed.DayChanged(strings.ToLower(value))
	case "start-hour":
		ed.TimeChanged(timerange.FieldStartHour, value)
	case "start-minute":
		ed.TimeChanged(timerange.FieldStartMinute, value)
	case "end-hour":
		ed.TimeChanged(timerange.FieldEndHour, value)
	case "end-minute":
		ed.TimeChanged(timerange.FieldEndMinute, value)
	}
}
