// Package snapshot persists graphs as compressed binary files so
// repeat runs can skip edge list parsing.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/pools"
)

// Snapshot format:
// [Magic:8][Version:1][CompressedLen:4][Compressed:N][Checksum:4]
//
// The compressed body is a uvarint stream: source count, then per
// source its ID, out-degree, and targets in insertion order.

const (
	snapshotMagic   = "PATHSNAP"
	snapshotVersion = 1
)

// ErrNotSnapshot is returned when input does not start with the
// snapshot magic.
var ErrNotSnapshot = fmt.Errorf("not a snapshot file")

// Write encodes g and writes it to path atomically. The snapshot is
// staged in a temp file and renamed into place so readers never see a
// partial write.
func Write(path string, g *graph.Graph) error {
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}

	if err := WriteTo(f, g); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publishing snapshot: %w", err)
	}

	return nil
}

// WriteTo encodes g onto w.
func WriteTo(w io.Writer, g *graph.Graph) error {
	body := encodeBody(g)
	compressed := snappy.Encode(nil, body)
	pools.PutBytes(body)

	writer := bufio.NewWriter(w)

	if _, err := writer.WriteString(snapshotMagic); err != nil {
		return err
	}
	if err := writer.WriteByte(snapshotVersion); err != nil {
		return err
	}
	if err := binary.Write(writer, binary.BigEndian, uint32(len(compressed))); err != nil {
		return err
	}
	if _, err := writer.Write(compressed); err != nil {
		return err
	}
	if err := binary.Write(writer, binary.BigEndian, crc32.ChecksumIEEE(compressed)); err != nil {
		return err
	}

	return writer.Flush()
}

// Read loads a graph snapshot from path.
func Read(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	return ReadFrom(bufio.NewReader(f))
}

// ReadFrom decodes a graph from r. The checksum is verified before the
// body is decompressed.
func ReadFrom(r io.Reader) (*graph.Graph, error) {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading snapshot magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return nil, ErrNotSnapshot
	}

	versionBuf := make([]byte, 1)
	if _, err := io.ReadFull(r, versionBuf); err != nil {
		return nil, fmt.Errorf("reading snapshot version: %w", err)
	}
	if versionBuf[0] != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", versionBuf[0])
	}

	var compressedLen uint32
	if err := binary.Read(r, binary.BigEndian, &compressedLen); err != nil {
		return nil, fmt.Errorf("reading snapshot length: %w", err)
	}

	compressed := pools.GetBytesSized(int(compressedLen))
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("reading snapshot body: %w", err)
	}

	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return nil, fmt.Errorf("reading snapshot checksum: %w", err)
	}
	if crc32.ChecksumIEEE(compressed) != checksum {
		return nil, fmt.Errorf("snapshot checksum mismatch")
	}

	body, err := snappy.Decode(nil, compressed)
	pools.PutBytes(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}

	return decodeBody(body)
}

// encodeBody flattens the adjacency lists into a uvarint stream.
// Sources are written in ascending ID order so identical graphs
// produce identical snapshots.
func encodeBody(g *graph.Graph) []byte {
	sources := g.SourceNodes()

	estimate := 8 + len(sources)*4 + g.EdgeCount()*4
	body := pools.GetBytes(estimate)

	body = binary.AppendUvarint(body, uint64(len(sources)))
	for _, source := range sources {
		targets := g.Neighbors(source)
		body = binary.AppendUvarint(body, source)
		body = binary.AppendUvarint(body, uint64(len(targets)))
		for _, target := range targets {
			body = binary.AppendUvarint(body, target)
		}
	}

	return body
}

// decodeBody rebuilds a graph from the uvarint stream.
func decodeBody(body []byte) (*graph.Graph, error) {
	reader := bytes.NewReader(body)

	sourceCount, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, fmt.Errorf("corrupt snapshot body: %w", err)
	}

	g := graph.NewWithConfig(graph.Config{ExpectedNodes: int(sourceCount)})

	for i := uint64(0); i < sourceCount; i++ {
		source, err := binary.ReadUvarint(reader)
		if err != nil {
			return nil, fmt.Errorf("corrupt snapshot body: %w", err)
		}
		degree, err := binary.ReadUvarint(reader)
		if err != nil {
			return nil, fmt.Errorf("corrupt snapshot body: %w", err)
		}
		for j := uint64(0); j < degree; j++ {
			target, err := binary.ReadUvarint(reader)
			if err != nil {
				return nil, fmt.Errorf("corrupt snapshot body: %w", err)
			}
			g.AddEdge(source, target)
		}
	}

	if reader.Len() != 0 {
		return nil, fmt.Errorf("corrupt snapshot body: %d trailing bytes", reader.Len())
	}

	return g, nil
}
