package bbcode

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Table is an insertion-ordered mapping from rule name to Rule.
// Order defines application order.
//
// Overwriting an existing name keeps its position; new names are appended.
type Table struct {
	m *linkedhashmap.Map
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{m: linkedhashmap.New()}
}

// Set inserts or overwrites the rule stored under name.
func (t *Table) Set(name string, rule Rule) {
	t.m.Put(name, rule)
}

// Get returns the rule stored under name.
func (t *Table) Get(name string) (Rule, bool) {
	value, found := t.m.Get(name)
	if !found {
		return Rule{}, false
	}
	rule, ok := value.(Rule)
	return rule, ok
}

// Has reports whether name is present.
func (t *Table) Has(name string) bool {
	_, found := t.m.Get(name)
	return found
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return t.m.Size()
}

// Names returns the rule names in table order.
func (t *Table) Names() []string {
	keys := t.m.Keys()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.(string))
	}
	return names
}

// Each calls fn for every rule in table order.
func (t *Table) Each(fn func(name string, rule Rule)) {
	it := t.m.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value().(Rule))
	}
}

// Clone returns an independent copy of the table.
// Rules are immutable and shared between the copies.
func (t *Table) Clone() *Table {
	clone := NewTable()
	t.Each(clone.Set)
	return clone
}

// Only returns a new table holding the rules whose names appear in names,
// in this table's order. Unknown names are ignored.
func (t *Table) Only(names ...string) *Table {
	wanted := nameSet(names)
	filtered := NewTable()
	t.Each(func(name string, rule Rule) {
		if _, ok := wanted[name]; ok {
			filtered.Set(name, rule)
		}
	})
	return filtered
}

// Except returns a new table holding every rule whose name does not appear
// in names, in this table's order.
func (t *Table) Except(names ...string) *Table {
	unwanted := nameSet(names)
	filtered := NewTable()
	t.Each(func(name string, rule Rule) {
		if _, ok := unwanted[name]; !ok {
			filtered.Set(name, rule)
		}
	})
	return filtered
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
