package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Binary layout, little-endian:
//
//	magic "KSIX" | version u32 | dimension u32 | count u32
//	per row: idLen u16 | id bytes | dimension * float32
var fileMagic = [4]byte{'K', 'S', 'I', 'X'}

const fileVersion = 1

// WriteFile persists the index. The file is written to a temp path in the
// same directory and renamed into place, so a concurrent reader never sees a
// half-written index.
func (f *Flat) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".ksix-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(fileMagic[:]); err != nil {
		tmp.Close()
		return err
	}
	for _, v := range []uint32{fileVersion, uint32(f.dim), uint32(len(f.vectors))} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			tmp.Close()
			return err
		}
	}
	for i, vec := range f.vectors {
		id := f.ids[i]
		if err := binary.Write(w, binary.LittleEndian, uint16(len(id))); err != nil {
			tmp.Close()
			return err
		}
		if _, err := w.WriteString(id); err != nil {
			tmp.Close()
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadFile loads a persisted index. Any failure — missing file, bad magic,
// truncation — is reported as ErrIndexUnavailable so the caller can degrade
// to the keyword path.
func ReadFile(path string) (*Flat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != fileMagic {
		return nil, fmt.Errorf("%w: %s is not an index file", ErrIndexUnavailable, path)
	}
	var version, dim, count uint32
	for _, p := range []*uint32{&version, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("%w: truncated header in %s", ErrIndexUnavailable, path)
		}
	}
	if version != fileVersion {
		return nil, fmt.Errorf("%w: unsupported index version %d", ErrIndexUnavailable, version)
	}
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero dimension in %s", ErrIndexUnavailable, path)
	}

	flat := &Flat{dim: int(dim)}
	for i := uint32(0); i < count; i++ {
		var idLen uint16
		if err := binary.Read(r, binary.LittleEndian, &idLen); err != nil {
			return nil, fmt.Errorf("%w: truncated row %d in %s", ErrIndexUnavailable, i, path)
		}
		idBytes := make([]byte, idLen)
		if _, err := io.ReadFull(r, idBytes); err != nil {
			return nil, fmt.Errorf("%w: truncated row %d in %s", ErrIndexUnavailable, i, path)
		}
		vec := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("%w: truncated row %d in %s", ErrIndexUnavailable, i, path)
		}
		flat.ids = append(flat.ids, string(idBytes))
		flat.vectors = append(flat.vectors, vec)
	}
	return flat, nil
}
