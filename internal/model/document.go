package model

import (
	"fmt"
	"strconv"
)

// Document is the whole persisted state: one record per Telegram user ID.
// It is loaded, mutated and saved wholesale; there are no partial writes.
type Document map[string]*UserRecord

// UserRecord holds one user's plants in insertion order. NextID is a
// monotonic counter minting stable plant/task IDs; the IDs are kept short
// (p3, t12) so that a pair of them fits in a Telegram callback payload.
type UserRecord struct {
	Plants []Plant `json:"plants"`
	NextID int     `json:"next_id,omitempty"`
}

// User returns the record for id, creating an empty one in place if absent.
func (d Document) User(id string) *UserRecord {
	rec, ok := d[id]
	if !ok {
		rec = &UserRecord{Plants: []Plant{}}
		d[id] = rec
	}
	return rec
}

func (u *UserRecord) MintPlantID() string {
	u.NextID++
	return fmt.Sprintf("p%d", u.NextID)
}

func (u *UserRecord) MintTaskID() string {
	u.NextID++
	return fmt.Sprintf("t%d", u.NextID)
}

func (u *UserRecord) PlantIndex(plantID string) int {
	for i := range u.Plants {
		if u.Plants[i].ID == plantID {
			return i
		}
	}
	return -1
}

func (u *UserRecord) Plant(plantID string) *Plant {
	if i := u.PlantIndex(plantID); i >= 0 {
		return &u.Plants[i]
	}
	return nil
}

// Normalize repairs a document that came out of the blob: nil slices
// become empty, non-positive intervals fall back to the default, and
// entities written before stable IDs existed get one assigned. The NextID
// counter is advanced past every ID already present so minting never
// collides.
func (d Document) Normalize() {
	for _, rec := range d {
		if rec == nil {
			continue
		}
		if rec.Plants == nil {
			rec.Plants = []Plant{}
		}
		for i := range rec.Plants {
			rec.bumpCounter(rec.Plants[i].ID)
			for j := range rec.Plants[i].Tasks {
				rec.bumpCounter(rec.Plants[i].Tasks[j].ID)
			}
		}
		for i := range rec.Plants {
			p := &rec.Plants[i]
			if p.ID == "" {
				p.ID = rec.MintPlantID()
			}
			if p.Tasks == nil {
				p.Tasks = []Task{}
			}
			for j := range p.Tasks {
				t := &p.Tasks[j]
				if t.ID == "" {
					t.ID = rec.MintTaskID()
				}
				if t.IntervalDays <= 0 {
					t.IntervalDays = DefaultIntervalDays
				}
			}
		}
	}
}

func (u *UserRecord) bumpCounter(id string) {
	if len(id) < 2 {
		return
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return
	}
	if n > u.NextID {
		u.NextID = n
	}
}
