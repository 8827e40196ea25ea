package graphql

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed queries/*.graphql
var queriesFS embed.FS

// registry maps a short query name to its document. It is filled once at
// package init and never written afterwards.
var registry = mustLoadAll()

// Lookup returns the document registered under name
func Lookup(name string) (string, bool) {
	query, ok := registry[name]
	return query, ok
}

// MustLookup returns the document registered under name and panics if there
// is none (for initialization)
func MustLookup(name string) string {
	query, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("query %s not registered", name))
	}
	return query
}

// Names returns the registered query names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadAll reads every .graphql file of the embedded queries directory. The
// file name without extension is the query name.
func loadAll(fsys fs.FS, dir string) (map[string]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	queries := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".graphql") {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to load query %s: %w", entry.Name(), err)
		}

		key := strings.TrimSuffix(entry.Name(), ".graphql")
		queries[key] = string(content)
	}

	return queries, nil
}

func mustLoadAll() map[string]string {
	queries, err := loadAll(queriesFS, "queries")
	if err != nil {
		// queries are embedded, so this only happens on a broken build
		panic(err)
	}
	return queries
}
