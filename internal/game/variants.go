package game

import "github.com/vovakirdan/tui-2048/internal/registry"

func init() {
	registry.Register(registry.Variant{ID: "4x4", Title: "Classic 4x4", Size: 4})
	registry.Register(registry.Variant{ID: "5x5", Title: "Large 5x5", Size: 5})
	registry.Register(registry.Variant{ID: "6x6", Title: "Huge 6x6", Size: 6})
}
