package netscope

import (
	"strconv"
)

// newName returns a name based on base that is not yet used by any sibling of the same kind. The
// first occurrence keeps base as-is; later ones get "2", "3", ... appended.
//
// Layers are only compared with Layers, and Groups (including Recurrents) only with Groups, so a
// sub-group "fc" and a layer "fc" can live side by side.
func (g *Group) newName(base string, isLayer bool) string {
	taken := make(map[string]bool, len(g.children))
	for _, c := range g.children {
		if _, ok := c.(*Layer); ok == isLayer {
			taken[c.Name()] = true
		}
	}

	name := base
	for i := 2; taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	return name
}
