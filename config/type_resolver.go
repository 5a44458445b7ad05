package config

import (
	"sort"
	"strings"

	"remapper/internal/analyze"
)

// ResolveTypeID resolves a type ID string like:
// - "store.Order" (short)
// - "remapper/store.Order" (full)
// - "Order" (name only).
func ResolveTypeID(typeIDStr string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	if graph == nil {
		return nil
	}

	typeIDStr = strings.TrimSpace(typeIDStr)
	if typeIDStr == "" || strings.HasSuffix(typeIDStr, ".") {
		return nil
	}

	// Exact match for a fully qualified import path.
	if i := strings.LastIndex(typeIDStr, "."); i > 0 {
		id := analyze.TypeID{PkgPath: typeIDStr[:i], Name: typeIDStr[i+1:]}
		if t := graph.GetType(id); t != nil {
			return t
		}
	}

	// Short forms, iterated in a stable order so ambiguous names resolve
	// deterministically.
	for _, id := range sortedIDs(graph) {
		if MatchTypeName(typeIDStr, id.String()) {
			return graph.Types[id]
		}
	}

	return nil
}

// TypeNames returns the short "pkg.Name" form of every type in the graph,
// used for suggestions.
func TypeNames(graph *analyze.TypeGraph) []string {
	if graph == nil {
		return nil
	}

	ids := sortedIDs(graph)

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.Short())
	}

	return names
}

func sortedIDs(graph *analyze.TypeGraph) []analyze.TypeID {
	ids := make([]analyze.TypeID, 0, len(graph.Types))
	for id := range graph.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}
