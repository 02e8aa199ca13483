package drops

import "strings"

// megaRares is the fixed list of especially high-value item names. Matching
// is case-insensitive substring so suffixed variants ("Twisted bow (dupe)")
// still count.
var megaRares = []string{
	"scythe of vitur",
	"twisted bow",
	"elder maul",
	"kodai insignia",
	"tumeken's shadow",
}

// nonDropMarkers flag submissions that score points but are not drops.
var nonDropMarkers = []string{"bounty daily", "challenge"}

// Categories is the tagged set of classifications for one item. The tags are
// non-exclusive: a single item can be a drop, a pet, and a mega-rare at once.
type Categories struct {
	Drop     bool
	BossPet  bool
	Jar      bool
	MegaRare bool
}

// Classify applies the item-name matching rules. Points and coins are summed
// regardless of the outcome here; only the counters depend on it.
func Classify(item string) Categories {
	lowered := strings.ToLower(strings.TrimSpace(item))

	c := Categories{Drop: true}
	for _, marker := range nonDropMarkers {
		if strings.Contains(lowered, marker) {
			c.Drop = false
			break
		}
	}

	c.BossPet = strings.Contains(lowered, "pet")
	c.Jar = lowered == "jar"

	for _, rare := range megaRares {
		if strings.Contains(lowered, rare) {
			c.MegaRare = true
			break
		}
	}

	return c
}
