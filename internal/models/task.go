package models

import "time"

type TaskCategory string

const (
	CategoryOpening TaskCategory = "opening"
	CategoryClosing TaskCategory = "closing"
	CategoryAdHoc   TaskCategory = "adhoc"
)

// Completion records that one identity has signed a task. Insertion
// order in Task.Completions is completion order.
type Completion struct {
	IdentityName string    `json:"identity_name"`
	Timestamp    time.Time `json:"timestamp"`
}

type Task struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Category    TaskCategory `json:"category"`
	Completions []Completion `json:"completions"`
	AdHoc       bool         `json:"created_as_adhoc"`
}

// Done holds iff at least one identity has signed the task.
func (t Task) Done() bool {
	return len(t.Completions) > 0
}

// SignedBy reports whether the named identity already appears in the
// completion list.
func (t Task) SignedBy(name string) bool {
	for _, c := range t.Completions {
		if c.IdentityName == name {
			return true
		}
	}
	return false
}
