package pagination

// Page is one slice of a paginated result set.
type Page[T any] struct {
	Items     []T
	Number    int
	paginator *Paginator
}

// NewPage wraps items as page number of p.
func NewPage[T any](p *Paginator, number int, items []T) *Page[T] {
	return &Page[T]{Items: items, Number: number, paginator: p}
}

// NumPages is the total number of pages.
func (pg *Page[T]) NumPages() int { return pg.paginator.NumPages() }

// Count is the total number of items across all pages.
func (pg *Page[T]) Count() int { return pg.paginator.Count }

func (pg *Page[T]) HasNext() bool     { return pg.Number < pg.NumPages() }
func (pg *Page[T]) HasPrevious() bool { return pg.Number > 1 }

// HasOtherPages reports whether pagination controls are worth rendering.
func (pg *Page[T]) HasOtherPages() bool { return pg.HasNext() || pg.HasPrevious() }

func (pg *Page[T]) NextPageNumber() int     { return pg.Number + 1 }
func (pg *Page[T]) PreviousPageNumber() int { return pg.Number - 1 }

// StartIndex is the 1-based index of the first item on the page, or 0 when empty.
func (pg *Page[T]) StartIndex() int {
	if pg.paginator.Count == 0 {
		return 0
	}
	return (pg.Number-1)*pg.paginator.PerPage + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (pg *Page[T]) EndIndex() int {
	if pg.Number == pg.NumPages() {
		return pg.paginator.Count
	}
	return pg.Number * pg.paginator.PerPage
}
