// Package export writes meshes to interchange formats.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Faultbox/textmesh/pkg/textmesh"
)

// WriteOBJ writes m as a Wavefront OBJ object named name. Each vertex
// shares its index across v, vt and vn records; OBJ indices are 1-based.
func WriteOBJ(w io.Writer, name string, m *textmesh.MeshData) error {
	if err := m.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var buf []byte

	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, v := range m.Vertices {
		buf = appendRecord(buf[:0], "v", v[:])
		bw.Write(buf)
	}
	for _, uv := range m.UVs {
		buf = appendRecord(buf[:0], "vt", uv[:])
		bw.Write(buf)
	}
	for _, n := range m.Normals {
		buf = appendRecord(buf[:0], "vn", n[:])
		bw.Write(buf)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		buf = append(buf[:0], 'f')
		for _, idx := range m.Indices[i : i+3] {
			ref := strconv.FormatUint(uint64(idx)+1, 10)
			buf = append(buf, ' ')
			buf = append(buf, ref...)
			buf = append(buf, '/')
			buf = append(buf, ref...)
			buf = append(buf, '/')
			buf = append(buf, ref...)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	return bw.Flush()
}

func appendRecord(buf []byte, tag string, values []float32) []byte {
	buf = append(buf, tag...)
	for _, v := range values {
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
	}
	return append(buf, '\n')
}

// WriteOBJFile writes m to path, creating parent directories.
func WriteOBJFile(path, name string, m *textmesh.MeshData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := WriteOBJ(f, name, m); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
