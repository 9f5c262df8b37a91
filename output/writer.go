// Package output persists fetched trade results for later inspection.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mak8427/poetrade/trade"
)

// WriteItems writes hydrated items to path as indented JSON, creating
// parent directories as needed. An empty item list writes an empty
// JSON array rather than nothing, so downstream tooling always finds a
// valid document.
func WriteItems(path string, items []trade.FetchedItem) error {
	if items == nil {
		items = []trade.FetchedItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write items: %w", err)
	}
	return nil
}
