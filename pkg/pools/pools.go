// Package pools provides object pooling for reducing GC pressure.
//
// This package contains pool implementations for the scratch buffers
// the analysis pipeline churns through:
//
//   - BytePool: Size-class based byte slice pooling (snapshot codec buffers)
//   - IntPool: Pooling for int slices (distance value collections)
package pools
