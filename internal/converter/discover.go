package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultExtension = ".xlsx"

// Order controls the sequence in which discovered files are combined.
type Order string

const (
	// OrderName sorts files lexicographically by name.
	OrderName Order = "name"
	// OrderListing keeps whatever order the directory listing returns.
	OrderListing Order = "listing"
)

func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderName, OrderListing:
		return o, nil
	default:
		return "", fmt.Errorf("unknown file order %q (want %q or %q)", s, OrderName, OrderListing)
	}
}

// Discover lists regular files directly inside dir whose names end with ext.
// The suffix match is case-sensitive and subdirectories are never entered.
func Discover(dir, ext string, order Order) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	// File.ReadDir returns entries in directory order, unlike os.ReadDir.
	entries, err := d.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if order != OrderListing {
		sort.Strings(files)
	}
	return files, nil
}

// UnqualifiedName strips the directory and the extension from path.
func UnqualifiedName(path, ext string) string {
	return strings.TrimSuffix(filepath.Base(path), ext)
}
