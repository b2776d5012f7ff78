package discovery

import (
	"strings"

	"github.com/JakeFAU/startup-discovery/internal/identity"
)

// Deduplicate collapses the aggregated sequence in two phases: exact
// identity collapse first, then a greedy approximate collapse of names that
// are substrings or superstrings of already-accepted names. Relative order
// is otherwise preserved, and running Deduplicate on its own output is a
// no-op.
//
// Phase two is a deliberate precision/recall tradeoff, not a clustering
// algorithm: a later candidate whose normalized name contains (or is
// contained by) an accepted one is dropped, unless the normalized name has
// five or fewer characters (short brands like "Zeta" collide too easily).
func Deduplicate(startups []*Startup) []*Startup {
	unique := collapseByIdentity(startups)
	return collapseByName(unique)
}

func collapseByIdentity(startups []*Startup) []*Startup {
	seen := make(map[string]struct{}, len(startups))
	out := make([]*Startup, 0, len(startups))
	for _, s := range startups {
		if s == nil {
			continue
		}
		// Never trust an adapter-supplied identity when deduplicating.
		id := identity.New(s.Name, s.Website)
		if _, ok := seen[id]; ok {
			TotalDuplicatesDropped.Inc()
			continue
		}
		seen[id] = struct{}{}
		s.ID = id
		out = append(out, s)
	}
	return out
}

func collapseByName(startups []*Startup) []*Startup {
	accepted := make([]string, 0, len(startups))
	out := make([]*Startup, 0, len(startups))
	for _, s := range startups {
		name := normalizeName(s.Name)
		duplicate := false
		for _, existing := range accepted {
			if strings.Contains(existing, name) || strings.Contains(name, existing) {
				if len(name) > 5 {
					duplicate = true
					break
				}
			}
		}
		if duplicate {
			TotalDuplicatesDropped.Inc()
			continue
		}
		accepted = append(accepted, name)
		out = append(out, s)
	}
	return out
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	replacer := strings.NewReplacer(" ", "", ".", "", ",", "")
	return replacer.Replace(name)
}
