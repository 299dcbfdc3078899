package table

import (
	"sync"

	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/selection"
)

// State is the whole user-facing table state. It is plain data and every
// transition below returns a new State.
type State struct {
	DatasetID string        `json:"datasetId"`
	Filter    string        `json:"filter"`
	Sort      SortState     `json:"sort"`
	Page      int           `json:"page"`
	PageSize  int           `json:"pageSize"`
	Selection selection.Set `json:"selection"`
}

func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{Page: 1, PageSize: pageSize, Sort: SortState{Direction: Asc}}
}

type derived struct {
	filtered []models.Record
	sorted   []models.Record
	window   Window
}

func derive(ds *models.Dataset, s State) derived {
	filtered := Filter(ds, s.Filter)
	var columns []models.Column
	if ds != nil {
		columns = ds.Columns
	}
	sorted := Sort(filtered, columns, s.Sort)
	return derived{
		filtered: filtered,
		sorted:   sorted,
		window:   NewWindow(len(filtered), s.PageSize, s.Page),
	}
}

// WithFilter keeps the current page unless it no longer exists, in which
// case the view goes back to page 1.
func (s State) WithFilter(ds *models.Dataset, text string) State {
	next := s
	next.Filter = text
	total := TotalPages(len(Filter(ds, text)), s.PageSize)
	if next.Page > total || next.Page < 1 {
		next.Page = 1
	}
	return next
}

func (s State) WithSort(ds *models.Dataset, key string) (State, error) {
	var columns []models.Column
	if ds != nil {
		columns = ds.Columns
	}
	sortState, err := ToggleSort(s.Sort, key, columns)
	if err != nil {
		return s, err
	}
	next := s
	next.Sort = sortState
	return next, nil
}

func (s State) WithPage(ds *models.Dataset, page int) State {
	next := s
	next.Page = ClampPage(page, TotalPages(len(Filter(ds, s.Filter)), s.PageSize))
	return next
}

// WithPageSize keeps the first visible record on screen.
func (s State) WithPageSize(ds *models.Dataset, size int) State {
	if size <= 0 {
		return s
	}
	first := (s.Page - 1) * s.PageSize
	next := s
	next.PageSize = size
	next.Page = first/size + 1
	return next.WithPage(ds, next.Page)
}

// WithRowToggled ignores ids that are not part of the filtered view.
func (s State) WithRowToggled(ds *models.Dataset, id models.RecordID) State {
	for _, r := range Filter(ds, s.Filter) {
		if r.ID == id {
			next := s
			next.Selection = s.Selection.Toggle(id)
			return next
		}
	}
	return s
}

// WithAllVisibleToggled clears the selection when every filtered record is
// already selected, otherwise selects the whole filtered view.
func (s State) WithAllVisibleToggled(ds *models.Dataset) State {
	ids := IDs(Filter(ds, s.Filter))
	next := s
	if s.Selection.ContainsAll(ids) {
		next.Selection = s.Selection.Clear()
	} else {
		next.Selection = s.Selection.SelectAll(ids)
	}
	return next
}

func (s State) WithSelectionCleared() State {
	next := s
	next.Selection = s.Selection.Clear()
	return next
}

// ForDataset adapts the state to a replacement dataset: the selection is
// emptied, the page goes back to 1, filter text survives and the sort
// survives only if its column still exists.
func (s State) ForDataset(ds *models.Dataset) State {
	next := s
	next.Selection = selection.New()
	next.Page = 1
	next.DatasetID = ""
	if ds != nil {
		next.DatasetID = ds.ID
		if s.Sort.Active() {
			if _, ok := ds.Column(s.Sort.Column); !ok {
				next.Sort = SortState{Direction: Asc}
			}
		}
	}
	return next
}

// ExportScope is the selected records in dataset order, or the whole
// filtered view when nothing is selected.
func ExportScope(ds *models.Dataset, s State) []models.Record {
	if s.Selection.IsEmpty() {
		return Filter(ds, s.Filter)
	}
	out := make([]models.Record, 0, s.Selection.Len())
	if ds == nil {
		return out
	}
	for _, r := range ds.Records {
		if s.Selection.Contains(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

type Meta struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	PageSize      int `json:"pageSize"`
	TotalCount    int `json:"totalCount"`
	FilteredCount int `json:"filteredCount"`
	FirstRow      int `json:"firstRow"`
	LastRow       int `json:"lastRow"`
}

type View struct {
	DatasetID     string          `json:"datasetId"`
	DatasetName   string          `json:"datasetName"`
	Columns       []models.Column `json:"columns"`
	Rows          []models.Record `json:"rows"`
	Meta          Meta            `json:"meta"`
	Sort          SortState       `json:"sort"`
	Filter        string          `json:"filter"`
	Selection     selection.Set   `json:"selection"`
	SelectedCount int             `json:"selectedCount"`
	AllSelected   bool            `json:"allSelected"`
}

// Render derives the visible page for s.
func Render(ds *models.Dataset, s State) View {
	d := derive(ds, s)
	rows := Slice(d.sorted, d.window)
	start, end := d.window.Bounds()
	first := 0
	if end > start {
		first = start + 1
	}
	v := View{
		Rows: rows,
		Meta: Meta{
			CurrentPage:   d.window.CurrentPage,
			TotalPages:    d.window.TotalPages,
			PageSize:      d.window.PageSize,
			TotalCount:    ds.Len(),
			FilteredCount: len(d.filtered),
			FirstRow:      first,
			LastRow:       end,
		},
		Sort:          s.Sort,
		Filter:        s.Filter,
		Selection:     s.Selection,
		SelectedCount: s.Selection.Len(),
		AllSelected:   s.Selection.ContainsAll(IDs(d.filtered)),
	}
	if ds != nil {
		v.DatasetID = ds.ID
		v.DatasetName = ds.Name
		v.Columns = ds.Columns
	}
	return v
}

// Explorer owns one dataset and its table state. All transitions go
// through it; the mutex serializes callers from different goroutines so
// that a dataset swap and its selection reset are seen together.
type Explorer struct {
	mu    sync.Mutex
	ds    *models.Dataset
	state State
}

func NewExplorer(ds *models.Dataset, pageSize int) *Explorer {
	return &Explorer{ds: ds, state: NewState(pageSize).ForDataset(ds)}
}

func (e *Explorer) apply(fn func(State) State) View {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = fn(e.state)
	return Render(e.ds, e.state)
}

func (e *Explorer) View() View {
	return e.apply(func(s State) State { return s })
}

func (e *Explorer) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Explorer) Dataset() *models.Dataset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ds
}

func (e *Explorer) SetFilterText(text string) View {
	return e.apply(func(s State) State { return s.WithFilter(e.ds, text) })
}

// SetSort ignores unknown columns and reports them through the error.
func (e *Explorer) SetSort(key string) (View, error) {
	var sortErr error
	v := e.apply(func(s State) State {
		next, err := s.WithSort(e.ds, key)
		sortErr = err
		return next
	})
	return v, sortErr
}

func (e *Explorer) GetPage(page int) View {
	return e.apply(func(s State) State { return s.WithPage(e.ds, page) })
}

func (e *Explorer) SetPageSize(size int) View {
	return e.apply(func(s State) State { return s.WithPageSize(e.ds, size) })
}

func (e *Explorer) ToggleRowSelection(id models.RecordID) View {
	return e.apply(func(s State) State { return s.WithRowToggled(e.ds, id) })
}

func (e *Explorer) ToggleSelectAllVisible() View {
	return e.apply(func(s State) State { return s.WithAllVisibleToggled(e.ds) })
}

func (e *Explorer) ClearSelection() View {
	return e.apply(func(s State) State { return s.WithSelectionCleared() })
}

// Filtered returns the dataset with the records matching the current
// filter, both taken under one lock.
func (e *Explorer) Filtered() (*models.Dataset, []models.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ds, Filter(e.ds, e.state.Filter)
}

// ExportRows returns the records an export request covers.
func (e *Explorer) ExportRows() (*models.Dataset, []models.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ds, ExportScope(e.ds, e.state)
}

func (e *Explorer) ReplaceDataset(ds *models.Dataset) View {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ds = ds
	e.state = e.state.ForDataset(ds)
	return Render(e.ds, e.state)
}
