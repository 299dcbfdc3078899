package table

import (
	"errors"
	"sort"
	"strings"

	"github.com/pivolan/argo_explorer/domain/models"
)

var ErrInvalidSortColumn = errors.New("sort column is not in the schema")

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the active sort. An empty Column means unsorted.
type SortState struct {
	Column    string    `json:"column,omitempty"`
	Direction Direction `json:"direction"`
}

func (s SortState) Active() bool { return s.Column != "" }

// ToggleSort applies a click on column key: the active column flips its
// direction, any other column starts ascending.
func ToggleSort(state SortState, key string, columns []models.Column) (SortState, error) {
	if !hasColumn(columns, key) {
		return state, ErrInvalidSortColumn
	}
	if state.Column == key {
		if state.Direction == Asc {
			return SortState{Column: key, Direction: Desc}, nil
		}
		return SortState{Column: key, Direction: Asc}, nil
	}
	return SortState{Column: key, Direction: Asc}, nil
}

// Sort returns a stably sorted copy of records. Values that are invalid for
// the column type always go last, whatever the direction.
func Sort(records []models.Record, columns []models.Column, state SortState) []models.Record {
	out := make([]models.Record, len(records))
	copy(out, records)
	if !state.Active() {
		return out
	}
	col, ok := findColumn(columns, state.Column)
	if !ok {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Get(col.Key), out[j].Get(col.Key)
		switch {
		case !a.Valid() && !b.Valid():
			return false
		case !a.Valid():
			return false
		case !b.Valid():
			return true
		}
		c := compare(col.Type, a, b)
		if state.Direction == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compare(t models.ValueType, a, b models.Value) int {
	switch t {
	case models.TypeNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	case models.TypeTimestamp:
		switch {
		case a.Time.Before(b.Time):
			return -1
		case a.Time.After(b.Time):
			return 1
		}
		return 0
	default:
		return strings.Compare(a.String(), b.String())
	}
}

func findColumn(columns []models.Column, key string) (models.Column, bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return models.Column{}, false
}

func hasColumn(columns []models.Column, key string) bool {
	_, ok := findColumn(columns, key)
	return ok
}
