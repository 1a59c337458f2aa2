package service

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/mpryce/ttedit/internal/model"
	"github.com/mpryce/ttedit/internal/timerange"
)

// Fragment is the parsed form of a series' event listing as returned by the
// list-events and edit endpoints.
type Fragment struct {
	SavePath string
	Events   []model.EventRecord
}

// ParseFragment extracts the events from an HTML fragment. Each event is an
// element carrying the js-event class and a data-id attribute; its fields
// are descendants carrying js-field-* classes. The save endpoint for the
// series is announced by a data-save-path attribute on the fragment's
// container.
func ParseFragment(content []byte) (*Fragment, error) {
	frag := &Fragment{}

	z := html.NewTokenizer(bytes.NewReader(content))

	var current *model.EventRecord
	var fieldName, fieldTag string

	flush := func() {
		if current != nil {
			frag.Events = append(frag.Events, *current)
			current = nil
		}
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break // end of fragment
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()

			if path := attrValue(tok, "data-save-path"); path != "" {
				frag.SavePath = path
			}

			classes := strings.Fields(attrValue(tok, "class"))

			if hasClass(classes, "js-event") {
				flush()
				rec := model.EventRecord{}
				if raw := attrValue(tok, "data-id"); raw != "" {
					id, err := timerange.ParseField(raw)
					if err != nil {
						return nil, fmt.Errorf("event data-id %q: %w", raw, err)
					}
					rec.ID = id
				}
				current = &rec
				fieldName = ""
				continue
			}

			if current == nil {
				continue
			}

			for _, class := range classes {
				if name, ok := strings.CutPrefix(class, "js-field-"); ok {
					fieldName = name
					fieldTag = tok.Data
					// Inputs and selects carry their value as an attribute.
					if v, found := attrPresent(tok, "value"); found {
						setField(current, fieldName, v)
						fieldName = ""
					} else {
						setField(current, fieldName, "")
					}
					break
				}
			}

		case html.TextToken:
			if current != nil && fieldName != "" {
				text := strings.TrimSpace(string(z.Text()))
				if text != "" {
					appendField(current, fieldName, text)
				}
			}

		case html.EndTagToken:
			tok := z.Token()
			if fieldName != "" && tok.Data == fieldTag {
				fieldName = ""
			}
		}
	}

	flush()
	return frag, nil
}

func attrValue(tok html.Token, name string) string {
	v, _ := attrPresent(tok, name)
	return v
}

func attrPresent(tok html.Token, name string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(classes []string, want string) bool {
	for _, c := range classes {
		if c == want {
			return true
		}
	}
	return false
}

func setField(rec *model.EventRecord, name, value string) {
	switch name {
	case "title":
		rec.Title = value
	case "location":
		rec.Location = value
	case "type":
		rec.Type = value
	case "people":
		rec.People = value
	case "week":
		rec.Week = value
	case "term":
		rec.Term = strings.ToLower(value)
	case "day":
		rec.Day = strings.ToLower(value)
	case "start-hour":
		rec.StartHour = value
	case "start-minute":
		rec.StartMinute = value
	case "end-hour":
		rec.EndHour = value
	case "end-minute":
		rec.EndMinute = value
	}
}

func appendField(rec *model.EventRecord, name, text string) {
	switch name {
	case "title":
		rec.Title = joinText(rec.Title, text)
	case "location":
		rec.Location = joinText(rec.Location, text)
	case "type":
		rec.Type = joinText(rec.Type, text)
	case "people":
		rec.People = joinText(rec.People, text)
	case "week":
		rec.Week = joinText(rec.Week, text)
	case "term":
		rec.Term = strings.ToLower(joinText(rec.Term, text))
	case "day":
		rec.Day = strings.ToLower(joinText(rec.Day, text))
	case "start-hour":
		rec.StartHour = joinText(rec.StartHour, text)
	case "start-minute":
		rec.StartMinute = joinText(rec.StartMinute, text)
	case "end-hour":
		rec.EndHour = joinText(rec.EndHour, text)
	case "end-minute":
		rec.EndMinute = joinText(rec.EndMinute, text)
	}
}

func joinText(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + " " + text
}
