package msh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxElementTags bounds the per-element tag count a decoder will accept.
// The format conventionally carries two tags (physical and elementary
// entity); anything far beyond that marks a corrupt or hostile record,
// and bounding it keeps a bad header from driving a huge allocation.
const maxElementTags = 16

// Decode reads a complete mesh from r, materializing every node and
// element. Both the ASCII and binary flavors are accepted; the flavor is
// detected from the $MeshFormat header.
func Decode(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	err := parse(r,
		func(n Node) { m.Nodes = append(m.Nodes, n) },
		func(e Element) { m.Elements = append(m.Elements, e) },
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeSummary streams through a mesh artifact and returns only its
// aggregate counters and coordinate extents. Node and element data pass
// through fixed-size scratch space and are never retained, so the memory
// cost is constant regardless of mesh size. The resulting counts are
// identical to Summarize(Decode(r)).
func DecodeSummary(r io.Reader) (Summary, error) {
	var s Summary
	err := parse(r,
		func(n Node) { s.observe(n.X, n.Y, n.Z) },
		func(e Element) { s.countElement(e.Type) },
	)
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

// parse walks one MSH 2.2 artifact, invoking the callbacks for every node
// and element in file order. Unknown sections are skipped wholesale.
func parse(r io.Reader, onNode func(Node), onElement func(Element)) error {
	br := bufio.NewReader(r)

	if err := expectLine(br, "$MeshFormat"); err != nil {
		return err
	}
	verLine, err := readLine(br)
	if err != nil {
		return fmt.Errorf("decode mesh: missing format line: %w", err)
	}
	fields := strings.Fields(verLine)
	if len(fields) != 3 || fields[0] != "2.2" {
		return fmt.Errorf("decode mesh: unsupported format line %q", verLine)
	}
	isBinary := fields[1] == "1"
	if isBinary {
		// The endianness probe: a lone int32 with value one.
		var one int32
		if err := binary.Read(br, binary.LittleEndian, &one); err != nil {
			return fmt.Errorf("decode mesh: reading endianness probe: %w", err)
		}
		if one != 1 {
			return fmt.Errorf("decode mesh: big-endian artifacts are not supported")
		}
	}
	if err := expectLine(br, "$EndMeshFormat"); err != nil {
		return err
	}

	for {
		section, err := readLine(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode mesh: %w", err)
		}
		switch section {
		case "":
			continue
		case "$Nodes":
			if err := parseNodes(br, isBinary, onNode); err != nil {
				return err
			}
		case "$Elements":
			if err := parseElements(br, isBinary, onElement); err != nil {
				return err
			}
		default:
			if err := skipSection(br, section); err != nil {
				return err
			}
		}
	}
}

// parseNodes reads the $Nodes section body through $EndNodes.
func parseNodes(br *bufio.Reader, isBinary bool, onNode func(Node)) error {
	count, err := readCount(br)
	if err != nil {
		return fmt.Errorf("decode mesh: node count: %w", err)
	}

	if isBinary {
		// One fixed-size record per node: int32 tag + three float64s.
		var buf [28]byte
		for i := 0; i < count; i++ {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return fmt.Errorf("decode mesh: node record %d: %w", i+1, err)
			}
			onNode(Node{
				Tag: int(int32(binary.LittleEndian.Uint32(buf[0:4]))),
				X:   float64frombits(buf[4:12]),
				Y:   float64frombits(buf[12:20]),
				Z:   float64frombits(buf[20:28]),
			})
		}
	} else {
		for i := 0; i < count; i++ {
			line, err := readLine(br)
			if err != nil {
				return fmt.Errorf("decode mesh: node line %d: %w", i+1, err)
			}
			f := strings.Fields(line)
			if len(f) != 4 {
				return fmt.Errorf("decode mesh: malformed node line %q", line)
			}
			tag, err := strconv.Atoi(f[0])
			if err != nil {
				return fmt.Errorf("decode mesh: node tag %q: %w", f[0], err)
			}
			var coords [3]float64
			for j := 0; j < 3; j++ {
				coords[j], err = strconv.ParseFloat(f[j+1], 64)
				if err != nil {
					return fmt.Errorf("decode mesh: node coordinate %q: %w", f[j+1], err)
				}
			}
			onNode(Node{Tag: tag, X: coords[0], Y: coords[1], Z: coords[2]})
		}
	}

	return expectLine(br, "$EndNodes")
}

// parseElements reads the $Elements section body through $EndElements.
func parseElements(br *bufio.Reader, isBinary bool, onElement func(Element)) error {
	count, err := readCount(br)
	if err != nil {
		return fmt.Errorf("decode mesh: element count: %w", err)
	}

	if isBinary {
		// Binary elements arrive in runs sharing a type and tag count.
		read := 0
		for read < count {
			var header [3]int32
			if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
				return fmt.Errorf("decode mesh: element group header: %w", err)
			}
			typ := ElementType(header[0])
			groupLen := int(header[1])
			ntags := int(header[2])
			if groupLen < 1 {
				return fmt.Errorf("decode mesh: corrupt element group length %d", groupLen)
			}
			if ntags < 0 || ntags > maxElementTags {
				return fmt.Errorf("decode mesh: corrupt element tag count %d", ntags)
			}
			perNode := typ.NodesPerElement()
			if perNode == 0 {
				return fmt.Errorf("decode mesh: unsupported element type %d in binary section", typ)
			}
			rec := make([]int32, 1+ntags+perNode)
			for i := 0; i < groupLen; i++ {
				if err := binary.Read(br, binary.LittleEndian, rec); err != nil {
					return fmt.Errorf("decode mesh: element record: %w", err)
				}
				e := Element{
					Tag:   int(rec[0]),
					Type:  typ,
					Tags:  make([]int, ntags),
					Nodes: make([]int, perNode),
				}
				for j := 0; j < ntags; j++ {
					e.Tags[j] = int(rec[1+j])
				}
				for j := 0; j < perNode; j++ {
					e.Nodes[j] = int(rec[1+ntags+j])
				}
				onElement(e)
			}
			read += groupLen
		}
	} else {
		for i := 0; i < count; i++ {
			line, err := readLine(br)
			if err != nil {
				return fmt.Errorf("decode mesh: element line %d: %w", i+1, err)
			}
			e, err := parseElementLine(line)
			if err != nil {
				return err
			}
			onElement(e)
		}
	}

	return expectLine(br, "$EndElements")
}

// parseElementLine decodes one ASCII element record:
// tag type ntags tag... node...
func parseElementLine(line string) (Element, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return Element{}, fmt.Errorf("decode mesh: malformed element line %q", line)
	}
	ints := make([]int, len(f))
	for i, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Element{}, fmt.Errorf("decode mesh: element field %q: %w", s, err)
		}
		ints[i] = v
	}
	typ := ElementType(ints[1])
	ntags := ints[2]
	if ntags < 0 || ntags > maxElementTags {
		return Element{}, fmt.Errorf("decode mesh: corrupt element tag count %d in line %q", ntags, line)
	}
	perNode := typ.NodesPerElement()
	if perNode == 0 {
		// Unknown type: infer the node count from what is left on the line
		// so foreign meshes still count correctly.
		perNode = len(ints) - 3 - ntags
	}
	if len(ints) != 3+ntags+perNode || perNode < 1 {
		return Element{}, fmt.Errorf("decode mesh: element line %q has wrong field count", line)
	}
	return Element{
		Tag:   ints[0],
		Type:  typ,
		Tags:  ints[3 : 3+ntags],
		Nodes: ints[3+ntags:],
	}, nil
}

// readLine reads the next line and trims surrounding whitespace.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// expectLine consumes lines (skipping blank ones, which follow binary
// payloads) until it finds the expected marker.
func expectLine(br *bufio.Reader, want string) error {
	for {
		line, err := readLine(br)
		if err != nil {
			return fmt.Errorf("decode mesh: expected %q: %w", want, err)
		}
		if line == "" {
			continue
		}
		if line != want {
			return fmt.Errorf("decode mesh: expected %q, found %q", want, line)
		}
		return nil
	}
}

// readCount reads the integer count line that opens a section body.
func readCount(br *bufio.Reader) (int, error) {
	line, err := readLine(br)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad count line %q", line)
	}
	return n, nil
}

// skipSection discards everything up to the matching end marker, e.g.
// "$PhysicalNames" through "$EndPhysicalNames".
func skipSection(br *bufio.Reader, opening string) error {
	if !strings.HasPrefix(opening, "$") {
		return fmt.Errorf("decode mesh: unexpected content %q", opening)
	}
	end := "$End" + opening[1:]
	for {
		line, err := readLine(br)
		if err != nil {
			return fmt.Errorf("decode mesh: unterminated section %s: %w", opening, err)
		}
		if line == end {
			return nil
		}
	}
}

// float64frombits decodes a little-endian float64 from an 8-byte slice.
func float64frombits(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
