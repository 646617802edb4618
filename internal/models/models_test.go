package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    ID
		wantErr bool
	}{
		{"number", `7`, 7, false},
		{"numeric_string", `"42"`, 42, false},
		{"empty_string", `""`, 0, false},
		{"null", `null`, 0, false},
		{"garbage_string", `"abc"`, 0, true},
		{"negative_string", `"-3"`, 0, true},
		{"object", `{}`, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tc.in), &id)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tc.want {
				t.Fatalf("got %d, want %d", id, tc.want)
			}
		})
	}
}

func TestTask_DecodeServerCreateEcho(t *testing.T) {
	// the reference API answers a create with {'id': new_id, **data}, so the
	// form's empty id can overwrite the assigned one
	var task Task
	body := `{"id":"","title":"X","dueDate":"2024-01-01","priority":"low","status":"pending","userId":3}`
	if err := json.Unmarshal([]byte(body), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.ID != 0 || task.UserID != 3 || task.Title != "X" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestTask_EncodeOmitsZeroID(t *testing.T) {
	b, err := json.Marshal(Task{Title: "X", UserID: 1, Priority: PriorityLow, Status: StatusPending, DueDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	if _, ok := m["id"]; ok {
		t.Fatalf("expected no id key, got %s", b)
	}
	if m["userId"].(float64) != 1 {
		t.Fatalf("expected userId=1, got %v", m["userId"])
	}
	// the API reads every field, an empty description included
	if d, ok := m["description"]; !ok || d != "" {
		t.Fatalf("expected an empty description key, got %s", b)
	}
}

func TestStatus_Toggled(t *testing.T) {
	if StatusPending.Toggled() != StatusCompleted {
		t.Fatalf("pending should toggle to completed")
	}
	if StatusCompleted.Toggled() != StatusPending {
		t.Fatalf("completed should toggle to pending")
	}
	if Status("").Toggled() != StatusPending {
		t.Fatalf("unknown status should toggle to pending")
	}
}

func TestTask_Validate(t *testing.T) {
	ok := Task{Title: "Write report", DueDate: "2024-01-01", Priority: PriorityHigh}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid task, got %v", err)
	}

	bad := []Task{
		{Title: " ", DueDate: "2024-01-01", Priority: PriorityLow},
		{Title: "x", DueDate: "", Priority: PriorityLow},
		{Title: "x", DueDate: "2024-01-01", Priority: "urgent"},
	}
	for i, task := range bad {
		if err := task.Validate(); !errors.Is(err, ErrInvalidTask) {
			t.Fatalf("case %d: expected ErrInvalidTask, got %v", i, err)
		}
	}
}

func TestCountPending(t *testing.T) {
	tasks := []Task{
		{Status: StatusPending},
		{Status: StatusCompleted},
		{Status: StatusPending},
	}
	if got := CountPending(tasks); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if got := CountPending(nil); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID(" 7 "); err != nil || id != 7 {
		t.Fatalf("got %d, %v", id, err)
	}
	if id, err := ParseID(""); err != nil || id != 0 {
		t.Fatalf("got %d, %v", id, err)
	}
	if _, err := ParseID("seven"); err == nil {
		t.Fatalf("expected error")
	}
}
