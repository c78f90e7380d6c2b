package models

import "context"

// CategoryLookup resolves category names and ids for one refresh cycle.
// Build a new one from every fresh Category read; do not keep it between requests.
type CategoryLookup struct {
	idByName map[string]uint
	nameByID map[uint]string
	names    []string
}

func NewCategoryLookup(categories []Category) CategoryLookup {
	l := CategoryLookup{
		idByName: make(map[string]uint, len(categories)),
		nameByID: make(map[uint]string, len(categories)),
		names:    make([]string, 0, len(categories)),
	}
	for _, c := range categories {
		if _, seen := l.idByName[c.Name]; !seen {
			l.names = append(l.names, c.Name)
		}
		// last duplicate name wins
		l.idByName[c.Name] = c.ID
		l.nameByID[c.ID] = c.Name
	}
	return l
}

func (l CategoryLookup) IDByName(name string) (uint, bool) {
	id, ok := l.idByName[name]
	return id, ok
}

func (l CategoryLookup) NameByID(id uint) (string, bool) {
	name, ok := l.nameByID[id]
	return name, ok
}

// Names returns the distinct category names in read order.
func (l CategoryLookup) Names() []string {
	return l.names
}

func (l CategoryLookup) Len() int {
	return len(l.names)
}

type CategoryReader interface {
	GetAllCategories(ctx context.Context) ([]Category, error)
}

// CategorySnapshot is the single authoritative Category read of one refresh
// cycle. Every component rendering that refresh takes it from here.
// A failed read leaves Categories empty and Err set.
type CategorySnapshot struct {
	Categories []Category
	Lookup     CategoryLookup
	Err        error
}

func ReadCategories(ctx context.Context, r CategoryReader) CategorySnapshot {
	categories, err := r.GetAllCategories(ctx)
	if err != nil {
		return CategorySnapshot{Lookup: NewCategoryLookup(nil), Err: err}
	}
	return CategorySnapshot{Categories: categories, Lookup: NewCategoryLookup(categories)}
}
