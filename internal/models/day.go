package models

import "time"

// LogEntry is one line of a day's append-only activity log. Entries are
// informational; no invariant check reads them.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// Approver captures who locked a day.
type Approver struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Day is the unit of work for one calendar date: its task list, its
// activity log, and its approval status. A day is created lazily from
// the task template and is never deleted; Open -> Approved happens at
// most once and Approved is terminal.
type Day struct {
	Date       string     `json:"date"`
	Site       string     `json:"site"`
	Tasks      []Task     `json:"tasks"`
	Approved   bool       `json:"approved"`
	ApprovedBy *Approver  `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
	Log        []LogEntry `json:"log"`
}

// AllDone holds iff every task has at least one completion. An empty
// task list is vacuously done.
func (d Day) AllDone() bool {
	for _, t := range d.Tasks {
		if !t.Done() {
			return false
		}
	}
	return true
}

// FindTask returns the index of the task with the given id, or -1.
func (d Day) FindTask(taskID string) int {
	for i, t := range d.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy. Engine operations transform a clone so the
// caller's day is never mutated on a rejected operation.
func (d Day) Clone() Day {
	out := d
	out.Tasks = make([]Task, len(d.Tasks))
	for i, t := range d.Tasks {
		out.Tasks[i] = t
		out.Tasks[i].Completions = append([]Completion(nil), t.Completions...)
	}
	out.Log = append([]LogEntry(nil), d.Log...)
	if d.ApprovedBy != nil {
		ab := *d.ApprovedBy
		out.ApprovedBy = &ab
	}
	if d.ApprovedAt != nil {
		at := *d.ApprovedAt
		out.ApprovedAt = &at
	}
	return out
}
