package catalog

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// BridgeMode selects how item indices are mapped back to item keys.
type BridgeMode string

const (
	// BridgeKeys maps item index i to the i-th distinct item key of the rating
	// stream. This is exact.
	BridgeKeys BridgeMode = "keys"

	// BridgeCatalogOrdinal maps item index i to the key of the i-th catalog
	// record. It only works if the catalog lists items in rating-stream order.
	BridgeCatalogOrdinal BridgeMode = "catalog-ordinal"
)

// ErrIncompleteBridge reports rated items that the bridge cannot resolve.
type ErrIncompleteBridge struct {
	Missing []uint32
	Total   int
}

func (e *ErrIncompleteBridge) Error() string {
	const maxShown = 10
	shown := e.Missing
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	parts := make([]string, len(shown))
	for i, m := range shown {
		parts[i] = fmt.Sprintf("%d", m)
	}
	suffix := ""
	if len(e.Missing) > maxShown {
		suffix = ", ..."
	}
	return fmt.Sprintf("item bridge incomplete: %d of %d items unmapped [%s%s]",
		len(e.Missing), e.Total, strings.Join(parts, ", "), suffix)
}

// Bridge maps dense item indices to source item keys.
type Bridge struct {
	mode BridgeMode
	keys map[uint32]string
}

// BridgeFromKeys builds a bridge where keys[i] belongs to item index i+1.
func BridgeFromKeys(keys []string) *Bridge {
	b := &Bridge{mode: BridgeKeys, keys: make(map[uint32]string, len(keys))}
	for i, k := range keys {
		b.keys[uint32(i+1)] = k
	}
	return b
}

// BridgeFromMap builds a bridge from an explicit index -> key table.
func BridgeFromMap(m map[uint32]string) *Bridge {
	b := &Bridge{mode: BridgeKeys, keys: make(map[uint32]string, len(m))}
	for idx, k := range m {
		b.keys[idx] = k
	}
	return b
}

// BridgeFromCatalog builds the positional bridge: item index i resolves to the
// key of catalog record i.
func BridgeFromCatalog(c *Catalog) *Bridge {
	b := &Bridge{mode: BridgeCatalogOrdinal, keys: make(map[uint32]string, c.Len())}
	for i, k := range c.ordinals {
		if k != "" {
			b.keys[uint32(i+1)] = k
		}
	}
	return b
}

// Mode returns how the bridge was built.
func (b *Bridge) Mode() BridgeMode {
	return b.mode
}

// Key returns the source key of item index idx. A nil Bridge maps nothing.
func (b *Bridge) Key(idx uint32) (string, bool) {
	if b == nil {
		return "", false
	}
	k, ok := b.keys[idx]
	return k, ok
}

// Len returns the number of mapped indices.
func (b *Bridge) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Validate checks that every item in referenced is mapped.
func (b *Bridge) Validate(referenced *roaring.Bitmap) error {
	var missing []uint32
	it := referenced.Iterator()
	for it.HasNext() {
		idx := it.Next()
		if _, ok := b.keys[idx]; !ok {
			missing = append(missing, idx)
		}
	}
	if len(missing) > 0 {
		return &ErrIncompleteBridge{Missing: missing, Total: int(referenced.GetCardinality())}
	}
	return nil
}
