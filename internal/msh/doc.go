// Package msh reads and writes mesh artifacts in the MSH 2.2 format,
// in both its ASCII and binary flavors.
//
// Two read paths are provided with very different cost profiles:
//
//   - Decode materializes every node and element. This is the slow path,
//     used only when the full topology is actually needed (inspection,
//     consistency tests).
//   - DecodeSummary streams through the file once and keeps nothing but
//     aggregate counters and coordinate extents. This is the fast path the
//     statistics extractor depends on.
//
// Both encodings describe identical topology for the same mesh; the binary
// flavor trades a fixed header overhead for a much more compact per-element
// record, which only pays off above a few thousand nodes.
package msh
