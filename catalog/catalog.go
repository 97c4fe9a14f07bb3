package catalog

import (
	"fmt"
	"strconv"
)

// Entry is a single catalog record.
type Entry struct {
	// Ordinal is the 1-based position of the record in the catalog source.
	Ordinal uint32
	Key     string
	Title   string
}

// Catalog maps item keys to titles and remembers record order.
type Catalog struct {
	titles   map[string]string
	ordinals []string // ordinals[i-1] is the key of record i
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{titles: make(map[string]string)}
}

// Add appends a record under the next ordinal. A repeated key takes the
// latest title.
func (c *Catalog) Add(key, title string) {
	c.ordinals = append(c.ordinals, key)
	c.titles[key] = title
}

// AddAt records a record at an explicit 1-based ordinal. Ordinals never
// recorded stay unmapped, so skipped source records keep their position.
func (c *Catalog) AddAt(ordinal uint32, key, title string) {
	if ordinal == 0 {
		return
	}
	for uint32(len(c.ordinals)) < ordinal {
		c.ordinals = append(c.ordinals, "")
	}
	c.ordinals[ordinal-1] = key
	c.titles[key] = title
}

// FromEntries builds a Catalog from entries. Entries with a zero Ordinal
// take the next free position.
func FromEntries(entries []Entry) *Catalog {
	c := New()
	for _, e := range entries {
		if e.Ordinal == 0 {
			c.Add(e.Key, e.Title)
			continue
		}
		c.AddAt(e.Ordinal, e.Key, e.Title)
	}
	return c
}

// Lookup returns the title stored for key.
func (c *Catalog) Lookup(key string) (string, bool) {
	t, ok := c.titles[key]
	return t, ok
}

// KeyAt returns the key of the record at 1-based ordinal.
func (c *Catalog) KeyAt(ordinal uint32) (string, bool) {
	if ordinal == 0 || int(ordinal) > len(c.ordinals) {
		return "", false
	}
	k := c.ordinals[ordinal-1]
	return k, k != ""
}

// Len returns the highest ordinal recorded.
func (c *Catalog) Len() int {
	return len(c.ordinals)
}

// Title resolves the display title of an item index through bridge.
//
// Unresolvable items fall back to Placeholder(item). A nil Catalog has no
// titles.
func (c *Catalog) Title(bridge *Bridge, item uint32) string {
	if c == nil {
		return Placeholder(item)
	}
	key, ok := bridge.Key(item)
	if !ok {
		key = strconv.FormatUint(uint64(item), 10)
	}
	if t, ok := c.titles[key]; ok {
		return t
	}
	return Placeholder(item)
}

// Placeholder returns the synthesized title for an item without a catalog
// entry.
func Placeholder(item uint32) string {
	return fmt.Sprintf("Book_%d", item)
}
