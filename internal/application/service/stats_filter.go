package service

import (
	"sort"
	"strings"

	"github.com/sangkips/yardops-api/internal/domain/repository"
)

type namedRow interface {
	EntityName() string
}

// effectiveExclusions returns the request's list whenever the request carried
// one, even an empty one, and the session default otherwise.
func effectiveExclusions(requested []string, requestedSet bool, sessionDefault []string) []string {
	if requestedSet {
		return cleanNames(requested)
	}
	return cleanNames(sessionDefault)
}

// cleanNames trims names and drops blanks and duplicates, keeping first occurrences
func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// filterAndOrder drops excluded entities and sorts the rest by their position
// in the persisted order. Entities missing from the order come after all
// listed ones, alphabetically. The input slice is not modified.
func filterAndOrder[T namedRow](rows []T, excluded, order []string) []T {
	skip := make(map[string]struct{}, len(excluded))
	for _, e := range excluded {
		skip[e] = struct{}{}
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if _, ok := skip[r.EntityName()]; ok {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].EntityName(), out[j].EntityName()
		ra, aListed := rank[a]
		rb, bListed := rank[b]
		switch {
		case aListed && bListed:
			if ra != rb {
				return ra < rb
			}
			return a < b
		case aListed != bListed:
			return aListed
		default:
			return a < b
		}
	})
	return out
}

// entityNames lists the entity of every row in row order
func entityNames[T namedRow](rows []T) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.EntityName())
	}
	return names
}

// attachPriorCounts copies each entity's prior-period count onto the current
// rows. Entities without a prior row get zero; prior-only entities are dropped.
func attachPriorCounts(current, prior []repository.PartsRow) []repository.PartsRow {
	byEntity := make(map[string]int64, len(prior))
	for _, p := range prior {
		byEntity[p.Entity] += p.Count
	}

	out := make([]repository.PartsRow, len(current))
	for i, r := range current {
		r.PriorCount = byEntity[r.Entity]
		out[i] = r
	}
	return out
}
