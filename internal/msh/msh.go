package msh

// Format selects the on-disk encoding of a mesh artifact.
type Format string

const (
	// FormatText is the human-readable ASCII encoding.
	FormatText Format = "text"

	// FormatBinary is the compact little-endian binary encoding.
	FormatBinary Format = "binary"
)

// IsValid reports whether the format is one of the known encodings.
func (f Format) IsValid() bool {
	return f == FormatText || f == FormatBinary
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// ElementType is the MSH element type code.
type ElementType int

// The element types this codec understands. The codes are fixed by the
// MSH format; anything else is passed through by tag count where possible
// and rejected otherwise.
const (
	ElementLine     ElementType = 1  // 2-node line
	ElementTriangle ElementType = 2  // 3-node triangle
	ElementQuad     ElementType = 3  // 4-node quadrilateral
	ElementPoint    ElementType = 15 // 1-node point
)

// NodesPerElement returns the number of mesh nodes an element of this
// type references, or 0 for an unknown type.
func (t ElementType) NodesPerElement() int {
	switch t {
	case ElementLine:
		return 2
	case ElementTriangle:
		return 3
	case ElementQuad:
		return 4
	case ElementPoint:
		return 1
	default:
		return 0
	}
}

// Node is a single mesh node with its 1-based tag and coordinates.
type Node struct {
	Tag     int
	X, Y, Z float64
}

// Element is a single mesh cell: its tag, type, the format's integer tag
// list (physical and elementary entity by convention), and the node tags
// it connects.
type Element struct {
	Tag   int
	Type  ElementType
	Tags  []int
	Nodes []int
}

// Mesh is a fully materialized mesh artifact.
type Mesh struct {
	Nodes    []Node
	Elements []Element
}

// Summary holds the aggregate quantities of a mesh artifact, computed in
// one streaming pass without retaining node or element arrays. The counts
// are identical to what a full Decode followed by enumeration would give.
type Summary struct {
	Nodes     int
	Triangles int
	Quads     int
	Lines     int
	Points    int
	Min       [3]float64
	Max       [3]float64
}

// observe folds one node coordinate into the running extents.
func (s *Summary) observe(x, y, z float64) {
	if s.Nodes == 0 {
		s.Min = [3]float64{x, y, z}
		s.Max = [3]float64{x, y, z}
	} else {
		if x < s.Min[0] {
			s.Min[0] = x
		}
		if y < s.Min[1] {
			s.Min[1] = y
		}
		if z < s.Min[2] {
			s.Min[2] = z
		}
		if x > s.Max[0] {
			s.Max[0] = x
		}
		if y > s.Max[1] {
			s.Max[1] = y
		}
		if z > s.Max[2] {
			s.Max[2] = z
		}
	}
	s.Nodes++
}

// countElement folds one element type into the counters.
func (s *Summary) countElement(t ElementType) {
	switch t {
	case ElementTriangle:
		s.Triangles++
	case ElementQuad:
		s.Quads++
	case ElementLine:
		s.Lines++
	case ElementPoint:
		s.Points++
	}
}

// Summarize computes the Summary of an already materialized mesh by plain
// enumeration. It exists as the reference implementation the streaming
// path is checked against.
func Summarize(m *Mesh) Summary {
	var s Summary
	for _, n := range m.Nodes {
		s.observe(n.X, n.Y, n.Z)
	}
	for _, e := range m.Elements {
		s.countElement(e.Type)
	}
	return s
}
