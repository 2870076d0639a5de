// Package registry provides a global registry of board variants.
// Variants register themselves in init() functions, allowing the CLI and the
// menus to list and resolve them without hardcoded sizes.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownVariant is returned when a variant ID is not registered.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Variant is a selectable board: a menu entry and the grid size it plays on.
// The size is taken as-is; there is no remapping between ID and size.
type Variant struct {
	ID    string // Used for CLI arguments and score storage (e.g. "4x4")
	Title string // Human-readable name
	Size  int    // Grid dimension
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Typically called from an init() function.
// Panics if the ID is already registered or the size is below 2.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	if v.Size < 2 {
		panic(fmt.Sprintf("registry: variant %q has invalid size %d", v.ID, v.Size))
	}

	variants[v.ID] = v
}

// List returns all registered variants, sorted by size and then ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Size != result[j].Size {
			return result[i].Size < result[j].Size
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the variant registered under id.
func Lookup(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}

// ForSize returns the variant for a grid size, or an ad-hoc "NxN" variant
// when none is registered. Of several variants with the same size, the one
// with the smallest ID wins.
func ForSize(size int) Variant {
	for _, v := range List() {
		if v.Size == size {
			return v
		}
	}
	id := fmt.Sprintf("%dx%d", size, size)
	return Variant{ID: id, Title: id, Size: size}
}

// Resolve returns the registered variant for id, or an ad-hoc variant when id
// has the "NxN" form of a square board.
func Resolve(id string) (Variant, error) {
	if v, err := Lookup(id); err == nil {
		return v, nil
	}

	var rows, cols int
	if n, _ := fmt.Sscanf(id, "%dx%d", &rows, &cols); n != 2 || rows != cols || rows < 2 {
		return Variant{}, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	if fmt.Sprintf("%dx%d", rows, cols) != id {
		return Variant{}, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return ForSize(rows), nil
}
