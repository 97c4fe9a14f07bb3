// Package catalog resolves item indices to display titles at output time.
//
// Two lookups are involved. A Bridge maps the dense item index used by the
// sparse rating vectors back to the item key from the source data, and a
// Catalog maps that key to a title. Keeping the Bridge explicit (rather than
// assuming the catalog file lists items in rating-stream order) lets callers
// validate that every rated item can be resolved:
//
//	bridge := catalog.BridgeFromKeys(items.Keys())
//	if err := bridge.Validate(store.ItemUniverse()); err != nil { ... }
//	title := cat.Title(bridge, itemIndex)
//
// Items without a catalog entry get a synthesized placeholder title.
package catalog
