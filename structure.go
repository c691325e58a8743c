package netscope

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// StructureDetail returns one Row for every Layer and Recurrent in the Group and its descendants,
// in tree order, along with the total number of parameter values. The root additionally starts
// with a row for its Input.
//
// Parameters are only declared when Layers are first invoked, so counts are zero until then.
func (g *Group) StructureDetail() ([]Row, int, error) {
	if g.tree.err != nil {
		return nil, 0, g.tree.err
	}

	var rows []Row
	if g.IsRoot() && g.input != nil {
		rows = append(rows, Row{Label: "Input_" + g.input.sampleShape.String()})
	}

	rows, total := g.structureRows(rows)
	return rows, total, nil
}

func (g *Group) structureRows(rows []Row) ([]Row, int) {
	var total int
	for _, c := range g.children {
		switch c := c.(type) {
		case *Layer:
			n := c.NumParams()
			rows = append(rows, Row{layerString(c, true, true), n})
			total += n
		case *Recurrent:
			n := c.NumParams()
			rows = append(rows, Row{c.StructureString(true, true), n})
			total += n
		case *Group:
			var n int
			rows, n = c.structureRows(rows)
			total += n
		default:
			panic(fmt.Sprintf("netscope: unknown child type %T", c))
		}
	}

	return rows, total
}

// Summary renders the structure detail of the root as a bordered table; see RenderTable. It
// returns an error if the Group is not the root.
func (g *Group) Summary() (string, error) {
	if !g.IsRoot() {
		return "", errors.Errorf("Can't summarize %q, only the root has a summary (level %d)", g.Path(), g.level)
	}

	rows, total, err := g.StructureDetail()
	if err != nil {
		return "", err
	}

	return RenderTable(rows, total), nil
}

// StructureString returns a single line describing the Group, such as
//	input_[28,28] => fc_128 -> relu => fc_10 -> softmax => output_10
//
// Groups are separated by " => " and the Layers within a Group by " -> ". Sum, Product and
// Concat Groups are written as "sum(a, b)", "prod(a, b)" and "concat(a, b)", Fork Groups as
// "(a, b)", and branches as "branch(a -> b -> output)".
//
// Without detail, only nucleus Layers and Groups are included. With scale, Layers that declare a
// neuron scale are suffixed with it (e.g. "fc_128"). A root that isn't a Fork ends with the scale
// of its output.
func (g *Group) StructureString(detail, scale bool) string {
	var sb strings.Builder
	if g.input != nil {
		sb.WriteString("input_" + g.input.sampleShape.String() + " => ")
	}

	nextGroup, nextLayer := " => ", " -> "
	enclosed := g.mode != Sequential || g.isBranch
	if enclosed {
		switch g.mode {
		case Sum, Product, Concat:
			sb.WriteString(g.mode.String())
		}

		if g.isBranch {
			sb.WriteString("branch")
		} else {
			nextGroup, nextLayer = ", ", ", "
		}
		sb.WriteByte('(')
	}

	var i int
	for _, c := range g.children {
		var s, sep string
		switch c := c.(type) {
		case *Layer:
			if !detail && !isNucleus(c.op) {
				continue
			}
			s, sep = layerString(c, scale, false), nextLayer
		case *Group:
			s, sep = c.StructureString(detail, scale), nextGroup
		case *Recurrent:
			s, sep = c.StructureString(detail, scale), nextGroup
		default:
			panic(fmt.Sprintf("netscope: unknown child type %T", c))
		}

		if i != 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(s)
		i++
	}

	if g.isBranch {
		sb.WriteString(" -> output")
	}

	if enclosed {
		sb.WriteByte(')')
	}

	if g.IsRoot() && g.mode != Fork && len(g.children) != 0 {
		sb.WriteString(" => output_" + outputScale(g.children[len(g.children)-1]).String())
	}

	return sb.String()
}

// Report returns the structure string of the Group, followed by its summary table if the tree was
// configured to show structure detail.
func (g *Group) Report() (string, error) {
	s := g.StructureString(true, true)
	if !g.tree.showStructureDetail || !g.IsRoot() {
		return s, nil
	}

	table, err := g.Summary()
	if err != nil {
		return "", err
	}

	return s + "\n" + table, nil
}

// layerString describes the Layer by its abbreviation (or its full name), optionally followed by
// its neuron scale.
func layerString(l *Layer, scale, fullName bool) string {
	s := l.op.TypeString()
	if fullName {
		s = l.name
	}

	if sc := neuronScale(l.op); scale && sc != nil {
		s += "_" + sc.String()
	}

	return s
}

// outputScale returns the scale of the last Layer of c that declares one, or nil if there is none
func outputScale(c Child) Shape {
	switch c := c.(type) {
	case *Layer:
		return neuronScale(c.op)
	case *Recurrent:
		return Shape{c.stateSize}
	case *Group:
		for i := len(c.children) - 1; i >= 0; i-- {
			if s := outputScale(c.children[i]); s != nil {
				return s
			}
		}
		return nil
	default:
		panic(fmt.Sprintf("netscope: unknown child type %T", c))
	}
}
