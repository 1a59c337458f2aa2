// Package templates renders the HTML fragments served by the stub server.
// The upstream project generates its components, but none of its template
// sources ship here, so these are written directly against templ.Component.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/mpryce/ttedit/internal/model"
)

// EventList renders the list-events fragment for a series: one js-event row
// per event, field values in js-field-* elements, and, when writable, the
// series' save endpoint in a data-save-path attribute. The markup is the
// contract the client's fragment parser consumes.
func EventList(seriesID string, events []model.EventRecord, writable bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if writable {
			if _, err := fmt.Fprintf(w,
				`<div class="js-events" data-save-path="/series/%s/edit">`,
				html.EscapeString(seriesID)); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<div class="js-events">`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<table><tbody>`); err != nil {
			return err
		}

		for _, e := range events {
			if err := writeEventRow(w, e, writable); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody></table></div>`)
		return err
	})
}

func writeEventRow(w io.Writer, e model.EventRecord, writable bool) error {
	if _, err := fmt.Fprintf(w, `<tr class="js-event" data-id="%d">`, e.ID); err != nil {
		return err
	}

	editable := ""
	if writable {
		editable = ` contenteditable="true"`
	}

	cells := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"location", e.Location},
		{"type", e.Type},
		{"people", e.People},
	}
	for _, c := range cells {
		if _, err := fmt.Fprintf(w, `<td class="js-field js-field-%s"%s>%s</td>`,
			c.field, editable, html.EscapeString(c.value)); err != nil {
			return err
		}
	}

	// The combined week/term/day/time cell the time dialog anchors to.
	if _, err := io.WriteString(w, `<td class="js-date-time-cell">`); err != nil {
		return err
	}
	spans := []struct {
		field string
		value string
	}{
		{"week", e.Week},
		{"term", e.PrettyTerm()},
		{"day", e.PrettyDay()},
		{"start-hour", e.StartHour},
		{"start-minute", e.StartMinute},
		{"end-hour", e.EndHour},
		{"end-minute", e.EndMinute},
	}
	for _, s := range spans {
		if _, err := fmt.Fprintf(w, `<span class="js-field-%s">%s</span>`,
			s.field, html.EscapeString(s.value)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</td>`); err != nil {
		return err
	}

	_, err := io.WriteString(w, `</tr>`)
	return err
}
