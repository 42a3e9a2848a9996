package model

import "strings"

// Plant is one tracked houseplant. Name is unique per user,
// case-insensitively. Tasks keep insertion order; their position is used
// for display numbering only, references go through the stable IDs.
type Plant struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Age   string `json:"age"`
	Added string `json:"added"`
	Tasks []Task `json:"tasks"`
}

// DoneCount reports how many of the plant's tasks are ticked off today.
func (p Plant) DoneCount() int {
	n := 0
	for _, t := range p.Tasks {
		if t.DoneToday {
			n++
		}
	}
	return n
}

func (p Plant) TaskIndex(taskID string) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

// NameEquals compares plant names the way the duplicate guard does.
func (p Plant) NameEquals(name string) bool {
	return strings.EqualFold(p.Name, name)
}
