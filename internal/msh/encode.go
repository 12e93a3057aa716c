package msh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

// Encode writes the mesh to w in the requested format. Node and element
// tags are written exactly as stored; callers are responsible for tag
// consistency (every element node tag must reference an existing node).
func Encode(m *Mesh, w io.Writer, format Format) error {
	switch format {
	case FormatText:
		return encodeText(m, w)
	case FormatBinary:
		return encodeBinary(m, w)
	default:
		return fmt.Errorf("encode mesh: unknown format %q", format)
	}
}

// encodeText writes the ASCII flavor. Coordinates use the shortest
// round-trippable float representation so a text/binary round trip is
// bit-identical.
func encodeText(m *Mesh, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	fmt.Fprintf(bw, "$Nodes\n%d\n", len(m.Nodes))
	for _, n := range m.Nodes {
		fmt.Fprintf(bw, "%d %s %s %s\n", n.Tag,
			strconv.FormatFloat(n.X, 'g', -1, 64),
			strconv.FormatFloat(n.Y, 'g', -1, 64),
			strconv.FormatFloat(n.Z, 'g', -1, 64))
	}
	fmt.Fprintf(bw, "$EndNodes\n")

	fmt.Fprintf(bw, "$Elements\n%d\n", len(m.Elements))
	for _, e := range m.Elements {
		fmt.Fprintf(bw, "%d %d %d", e.Tag, int(e.Type), len(e.Tags))
		for _, t := range e.Tags {
			fmt.Fprintf(bw, " %d", t)
		}
		for _, n := range e.Nodes {
			fmt.Fprintf(bw, " %d", n)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintf(bw, "$EndElements\n")

	return bw.Flush()
}

// encodeBinary writes the binary flavor: little-endian, int32 tags,
// float64 coordinates, elements grouped into runs of identical type and
// tag count as the format requires.
func encodeBinary(m *Mesh, w io.Writer) error {
	bw := bufio.NewWriter(w)

	// The lone int32 after the format line lets a reader detect the
	// writer's endianness.
	fmt.Fprintf(bw, "$MeshFormat\n2.2 1 8\n")
	if err := binary.Write(bw, binary.LittleEndian, int32(1)); err != nil {
		return fmt.Errorf("encode mesh header: %w", err)
	}
	fmt.Fprintf(bw, "\n$EndMeshFormat\n")

	fmt.Fprintf(bw, "$Nodes\n%d\n", len(m.Nodes))
	for _, n := range m.Nodes {
		rec := struct {
			Tag     int32
			X, Y, Z float64
		}{int32(n.Tag), n.X, n.Y, n.Z}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("encode node %d: %w", n.Tag, err)
		}
	}
	fmt.Fprintf(bw, "\n$EndNodes\n")

	fmt.Fprintf(bw, "$Elements\n%d\n", len(m.Elements))
	for start := 0; start < len(m.Elements); {
		end := start + 1
		for end < len(m.Elements) &&
			m.Elements[end].Type == m.Elements[start].Type &&
			len(m.Elements[end].Tags) == len(m.Elements[start].Tags) {
			end++
		}
		group := m.Elements[start:end]
		header := [3]int32{
			int32(group[0].Type),
			int32(len(group)),
			int32(len(group[0].Tags)),
		}
		if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
			return fmt.Errorf("encode element group header: %w", err)
		}
		for _, e := range group {
			if err := writeInt32s(bw, e.Tag, e.Tags, e.Nodes); err != nil {
				return fmt.Errorf("encode element %d: %w", e.Tag, err)
			}
		}
		start = end
	}
	fmt.Fprintf(bw, "\n$EndElements\n")

	return bw.Flush()
}

// writeInt32s emits one binary element record: tag, tag list, node list.
func writeInt32s(w io.Writer, tag int, tags, nodes []int) error {
	vals := make([]int32, 0, 1+len(tags)+len(nodes))
	vals = append(vals, int32(tag))
	for _, t := range tags {
		vals = append(vals, int32(t))
	}
	for _, n := range nodes {
		vals = append(vals, int32(n))
	}
	return binary.Write(w, binary.LittleEndian, vals)
}
