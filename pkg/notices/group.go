package notices

import "github.com/matzehuels/noticegen/pkg/project"

// Group is a license text and every library that resolved to it.
type Group struct {
	LicenseText string
	Libraries   []project.Library
}

// grouper accumulates libraries by license text, remembering the order in
// which each text was first seen.
type grouper struct {
	index  map[string]int
	groups []Group
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]int)}
}

func (g *grouper) add(text string, lib project.Library) {
	i, ok := g.index[text]
	if !ok {
		i = len(g.groups)
		g.index[text] = i
		g.groups = append(g.groups, Group{LicenseText: text})
	}
	g.groups[i].Libraries = append(g.groups[i].Libraries, lib)
}
