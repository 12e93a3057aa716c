package msh

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleMesh builds a small mixed mesh: a boundary of lines, two
// triangles, one quad, and one point element.
func sampleMesh() *Mesh {
	return &Mesh{
		Nodes: []Node{
			{Tag: 1, X: 0, Y: 0, Z: 0},
			{Tag: 2, X: 1, Y: 0, Z: 0},
			{Tag: 3, X: 1, Y: 1, Z: 0},
			{Tag: 4, X: 0, Y: 1, Z: 0},
			{Tag: 5, X: 0.5, Y: 0.5, Z: 0.25},
		},
		Elements: []Element{
			{Tag: 1, Type: ElementPoint, Tags: []int{0, 1}, Nodes: []int{1}},
			{Tag: 2, Type: ElementLine, Tags: []int{0, 1}, Nodes: []int{1, 2}},
			{Tag: 3, Type: ElementLine, Tags: []int{0, 1}, Nodes: []int{2, 3}},
			{Tag: 4, Type: ElementTriangle, Tags: []int{0, 1}, Nodes: []int{1, 2, 5}},
			{Tag: 5, Type: ElementTriangle, Tags: []int{0, 1}, Nodes: []int{2, 3, 5}},
			{Tag: 6, Type: ElementQuad, Tags: []int{0, 1}, Nodes: []int{1, 2, 3, 4}},
		},
	}
}

// TestEncodeDecode_RoundTrip verifies both flavors reproduce the mesh
// exactly, tags and coordinates included.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatText, FormatBinary} {
		t.Run(format.String(), func(t *testing.T) {
			in := sampleMesh()
			var buf bytes.Buffer
			require.NoError(t, Encode(in, &buf, format))

			out, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, in.Nodes, out.Nodes)
			assert.Equal(t, in.Elements, out.Elements)
		})
	}
}

// TestEncode_TextHeader verifies the ASCII header fields: version 2.2,
// file-type 0, 8-byte floats.
func TestEncode_TextHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(sampleMesh(), &buf, FormatText))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n"))
	assert.Contains(t, out, "$Nodes\n5\n")
	assert.Contains(t, out, "$Elements\n6\n")
}

// TestEncode_BinaryHeader verifies the binary header carries file-type 1
// and the little-endian probe value.
func TestEncode_BinaryHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(sampleMesh(), &buf, FormatBinary))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("$MeshFormat\n2.2 1 8\n")))
	probe := out[len("$MeshFormat\n2.2 1 8\n"):][:4]
	assert.Equal(t, []byte{1, 0, 0, 0}, probe)
}

// TestEncode_BinarySmaller verifies the size crossover the auto encoding
// policy relies on: for a large mesh the binary flavor is more compact.
func TestEncode_BinarySmaller(t *testing.T) {
	m := &Mesh{}
	for i := 0; i < 5000; i++ {
		m.Nodes = append(m.Nodes, Node{Tag: i + 1, X: float64(i) / 3, Y: float64(i) / 7})
	}
	for i := 0; i < 4998; i++ {
		m.Elements = append(m.Elements, Element{
			Tag: i + 1, Type: ElementTriangle, Tags: []int{0, 1},
			Nodes: []int{i + 1, i + 2, i + 3},
		})
	}

	var text, bin bytes.Buffer
	require.NoError(t, Encode(m, &text, FormatText))
	require.NoError(t, Encode(m, &bin, FormatBinary))
	assert.Less(t, bin.Len(), text.Len())
}

// TestEncode_UnknownFormat verifies the dispatch rejects anything but the
// two known encodings.
func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(sampleMesh(), &buf, Format("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

// TestDecodeSummary_MatchesReference verifies the streaming summary equals
// the reference enumeration of a full decode, for both flavors.
func TestDecodeSummary_MatchesReference(t *testing.T) {
	for _, format := range []Format{FormatText, FormatBinary} {
		t.Run(format.String(), func(t *testing.T) {
			in := sampleMesh()
			var buf bytes.Buffer
			require.NoError(t, Encode(in, &buf, format))
			artifact := buf.Bytes()

			streamed, err := DecodeSummary(bytes.NewReader(artifact))
			require.NoError(t, err)

			full, err := Decode(bytes.NewReader(artifact))
			require.NoError(t, err)
			assert.Equal(t, Summarize(full), streamed)
		})
	}
}

// TestDecodeSummary_Counts verifies the per-type counters and extents of
// the sample mesh.
func TestDecodeSummary_Counts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(sampleMesh(), &buf, FormatText))

	s, err := DecodeSummary(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Nodes)
	assert.Equal(t, 2, s.Triangles)
	assert.Equal(t, 1, s.Quads)
	assert.Equal(t, 2, s.Lines)
	assert.Equal(t, 1, s.Points)
	assert.Equal(t, [3]float64{0, 0, 0}, s.Min)
	assert.Equal(t, [3]float64{1, 1, 0.25}, s.Max)
}

// TestFlavorsDescribeSameMesh verifies the two encodings of one mesh are
// semantically identical: same counts, same bounding box.
func TestFlavorsDescribeSameMesh(t *testing.T) {
	in := sampleMesh()
	var text, bin bytes.Buffer
	require.NoError(t, Encode(in, &text, FormatText))
	require.NoError(t, Encode(in, &bin, FormatBinary))

	fromText, err := DecodeSummary(&text)
	require.NoError(t, err)
	fromBin, err := DecodeSummary(&bin)
	require.NoError(t, err)
	assert.Equal(t, fromText, fromBin)
}

// TestDecode_SkipsUnknownSections verifies foreign sections like
// $PhysicalNames are ignored without disturbing the node parse.
func TestDecode_SkipsUnknownSections(t *testing.T) {
	artifact := "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n" +
		"$PhysicalNames\n1\n2 1 \"surface\"\n$EndPhysicalNames\n" +
		"$Nodes\n1\n1 0 0 0\n$EndNodes\n" +
		"$Elements\n0\n$EndElements\n"

	m, err := Decode(strings.NewReader(artifact))
	require.NoError(t, err)
	assert.Len(t, m.Nodes, 1)
	assert.Empty(t, m.Elements)
}

// TestDecode_RejectsMalformed covers the common corruption cases.
func TestDecode_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
	}{
		{"empty input", ""},
		{"wrong magic", "$Mesh\n2.2 0 8\n"},
		{"unsupported version", "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n"},
		{"bad node count", "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\nmany\n"},
		{"short node line", "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n1\n1 0\n$EndNodes\n"},
		{"truncated section", "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n2\n1 0 0 0\n"},
		{"element field miscount", "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n" +
			"$Nodes\n0\n$EndNodes\n$Elements\n1\n1 2 2 0 1 1 2\n$EndElements\n"},
		{"negative element tag count", "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n" +
			"$Nodes\n0\n$EndNodes\n$Elements\n1\n1 2 -2 7\n$EndElements\n"},
		{"huge element tag count", "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n" +
			"$Nodes\n0\n$EndNodes\n$Elements\n1\n1 2 1000000 7\n$EndElements\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.artifact))
			assert.Error(t, err)
		})
	}
}

// TestDecode_RejectsCorruptBinaryHeaders verifies corrupt binary element
// group headers return an error instead of crashing the decoder. The
// counts come from untrusted files, so a negative or runaway value must
// never reach a slice allocation.
func TestDecode_RejectsCorruptBinaryHeaders(t *testing.T) {
	buildArtifact := func(header [3]int32) []byte {
		var buf bytes.Buffer
		buf.WriteString("$MeshFormat\n2.2 1 8\n")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(1)))
		buf.WriteString("\n$EndMeshFormat\n$Nodes\n0\n$EndNodes\n$Elements\n1\n")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, &header))
		return buf.Bytes()
	}

	tests := []struct {
		name   string
		header [3]int32 // type, group length, tag count
	}{
		{"negative tag count", [3]int32{int32(ElementTriangle), 1, -2}},
		{"huge tag count", [3]int32{int32(ElementTriangle), 1, 1 << 20}},
		{"negative group length", [3]int32{int32(ElementTriangle), -1, 2}},
		{"zero group length", [3]int32{int32(ElementTriangle), 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(buildArtifact(tt.header)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "corrupt element")
		})
	}
}

// TestElementType_NodesPerElement pins the node counts of the known codes.
func TestElementType_NodesPerElement(t *testing.T) {
	assert.Equal(t, 2, ElementLine.NodesPerElement())
	assert.Equal(t, 3, ElementTriangle.NodesPerElement())
	assert.Equal(t, 4, ElementQuad.NodesPerElement())
	assert.Equal(t, 1, ElementPoint.NodesPerElement())
	assert.Equal(t, 0, ElementType(99).NodesPerElement())
}
