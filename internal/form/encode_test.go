package form

import "testing"

func TestEventSet(t *testing.T) {
	forms := []map[string]string{
		{"id": "1", "title": "Algorithms I"},
		{"id": "", "title": "Examples class"},
	}

	values := EventSet(forms)

	if got := values.Get("event_set-initial"); got != "2" {
		t.Errorf("event_set-initial = %q, want \"2\"", got)
	}
	if got := values.Get("event_set-forms-0-title"); got != "Algorithms I" {
		t.Errorf("event_set-forms-0-title = %q", got)
	}
	if got := values.Get("event_set-forms-1-title"); got != "Examples class" {
		t.Errorf("event_set-forms-1-title = %q", got)
	}
	if got := values.Get("event_set-forms-0-id"); got != "1" {
		t.Errorf("event_set-forms-0-id = %q", got)
	}
	if _, ok := values["event_set-forms-1-id"]; !ok {
		t.Error("empty id field should still be present")
	}
}

func TestEncodeNesting(t *testing.T) {
	values := Encode(map[string]any{
		"outer": map[string]any{
			"count": 3,
			"items": []any{"a", "b"},
		},
	})

	if got := values.Get("outer-count"); got != "3" {
		t.Errorf("outer-count = %q, want \"3\"", got)
	}
	if got := values.Get("outer-items-0"); got != "a" {
		t.Errorf("outer-items-0 = %q, want \"a\"", got)
	}
	if got := values.Get("outer-items-1"); got != "b" {
		t.Errorf("outer-items-1 = %q, want \"b\"", got)
	}
}
