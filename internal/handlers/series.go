// Package handlers implements the stub server's series endpoints: the same
// two-endpoint contract the real backend exposes, so the client layer can be
// exercised end to end.
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/mpryce/ttedit/internal/model"
	"github.com/mpryce/ttedit/internal/store"
	"github.com/mpryce/ttedit/internal/templates"
)

// ListEventsHandler serves GET /series/:id/list-events. The writable flag is
// accepted under both its historical spelling ("writeable") and the plain
// one.
func ListEventsHandler(events store.EventStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		seriesID := c.Params("id")
		writable := c.Query("writeable") == "true" || c.Query("writable") == "true"

		records, err := events.ListBySeries(ctx, seriesID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading events")
		}

		page := templates.EventList(seriesID, records, writable)
		handler := adaptor.HTTPHandler(templ.Handler(page))
		return handler(c)
	}
}

// SaveEventsHandler serves POST /series/:id/edit. It decodes the combined
// event payload, replaces the series' stored events wholesale, and responds
// with a fresh writable fragment in the same shape as list-events.
func SaveEventsHandler(events store.EventStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		seriesID := c.Params("id")

		submitted, err := decodeEventSet(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}

		saved, err := events.ReplaceSeries(ctx, seriesID, submitted)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error saving events")
		}

		page := templates.EventList(seriesID, saved, true)
		handler := adaptor.HTTPHandler(templ.Handler(page))
		return handler(c)
	}
}

// decodeEventSet reads the flattened formset payload: event_set-initial
// holds the event count, event_set-forms-<i>-<field> the per-event values.
func decodeEventSet(c *fiber.Ctx) ([]model.EventRecord, error) {
	countRaw := c.FormValue("event_set-initial")
	count, err := strconv.Atoi(countRaw)
	if err != nil {
		return nil, fmt.Errorf("bad event_set-initial %q", countRaw)
	}

	records := make([]model.EventRecord, 0, count)
	for i := 0; i < count; i++ {
		prefix := fmt.Sprintf("event_set-forms-%d-", i)

		rec := model.EventRecord{
			Title:       c.FormValue(prefix + "title"),
			Location:    c.FormValue(prefix + "location"),
			Type:        c.FormValue(prefix + "event_type"),
			People:      c.FormValue(prefix + "people"),
			Week:        c.FormValue(prefix + "term_week"),
			Term:        strings.ToLower(c.FormValue(prefix + "term_name")),
			Day:         strings.ToLower(c.FormValue(prefix + "day_of_week")),
			StartHour:   c.FormValue(prefix + "start_hour"),
			StartMinute: c.FormValue(prefix + "start_minute"),
			EndHour:     c.FormValue(prefix + "end_hour"),
			EndMinute:   c.FormValue(prefix + "end_minute"),
		}

		if idRaw := c.FormValue(prefix + "id"); idRaw != "" {
			id, err := strconv.Atoi(idRaw)
			if err != nil {
				return nil, fmt.Errorf("bad id %q for event %d", idRaw, i)
			}
			rec.ID = id
		}

		records = append(records, rec)
	}
	return records, nil
}
