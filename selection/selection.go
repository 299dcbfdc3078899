// Package selection tracks which records of the current dataset are
// selected. A Set is immutable: every transition returns a new Set.
package selection

import (
	"encoding/json"
	"sort"

	"github.com/pivolan/argo_explorer/domain/models"
)

type Set struct {
	ids map[models.RecordID]struct{}
}

func New(ids ...models.RecordID) Set {
	return Set{}.SelectAll(ids)
}

func (s Set) Len() int { return len(s.ids) }

func (s Set) IsEmpty() bool { return len(s.ids) == 0 }

func (s Set) Contains(id models.RecordID) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle adds id when absent and removes it when present.
func (s Set) Toggle(id models.RecordID) Set {
	next := s.clone()
	if _, ok := next.ids[id]; ok {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// SelectAll replaces the selection with ids.
func (s Set) SelectAll(ids []models.RecordID) Set {
	next := Set{ids: make(map[models.RecordID]struct{}, len(ids))}
	for _, id := range ids {
		next.ids[id] = struct{}{}
	}
	return next
}

func (s Set) Clear() Set {
	return Set{}
}

// ContainsAll reports whether every id is selected. An empty list is never
// fully selected.
func (s Set) ContainsAll(ids []models.RecordID) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// IDs returns the selected ids in lexical order.
func (s Set) IDs() []models.RecordID {
	out := make([]models.RecordID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Set) clone() Set {
	next := Set{ids: make(map[models.RecordID]struct{}, len(s.ids)+1)}
	for id := range s.ids {
		next.ids[id] = struct{}{}
	}
	return next
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []models.RecordID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = Set{}.SelectAll(ids)
	return nil
}
