// Package turboply is a high-throughput codec for the PLY polygon-mesh
// file format. It parses and emits the textual header, reads and writes
// per-element binary little-endian or ASCII properties, and offers
// zero-copy access to row data through memory-mapped files.
//
// Callers describe their in-memory columns once, as specs over flat
// slices, and drive the full traversal with a single BindRead or
// BindWrite call:
//
//	fr, _ := turboply.OpenFileReader("cloud.ply", true)
//	defer fr.Close()
//
//	var xyz []float32
//	err := turboply.BindRead(fr.Reader,
//		turboply.NewScalarSpec("vertex", &xyz, "x", "y", "z"))
//
// File properties no spec claims are skipped; list properties bind to
// variable-length or fixed-length rows. Big-endian PLY files are not
// supported.
package turboply
