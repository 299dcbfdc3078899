package table

const DefaultPageSize = 10

// Window is the pagination window over a filtered view. CurrentPage is
// always within [1, TotalPages] and TotalPages is at least 1.
type Window struct {
	CurrentPage   int `json:"currentPage"`
	PageSize      int `json:"pageSize"`
	TotalPages    int `json:"totalPages"`
	FilteredCount int `json:"filteredCount"`
}

func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func NewWindow(filteredCount, pageSize, page int) Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(filteredCount, pageSize)
	return Window{
		CurrentPage:   ClampPage(page, total),
		PageSize:      pageSize,
		TotalPages:    total,
		FilteredCount: filteredCount,
	}
}

// Bounds is the half-open index range of the current page.
func (w Window) Bounds() (start, end int) {
	start = (w.CurrentPage - 1) * w.PageSize
	end = start + w.PageSize
	if start > w.FilteredCount {
		start = w.FilteredCount
	}
	if end > w.FilteredCount {
		end = w.FilteredCount
	}
	return start, end
}

// Slice returns the current page of sorted as a sub-slice.
func Slice[T any](sorted []T, w Window) []T {
	start, end := w.Bounds()
	if end > len(sorted) {
		end = len(sorted)
	}
	if start > end {
		start = end
	}
	return sorted[start:end]
}
