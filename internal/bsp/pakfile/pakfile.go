// Package pakfile bridges the PAKFILE lump to the standard ZIP format: the
// lump's bytes are a complete, self-contained ZIP archive (embedded
// textures, materials, and other loose assets bundled with the map), which
// Go's archive/zip already knows how to read and write.
package pakfile

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/vortigaunt/srcbsp/internal/bsperr"
)

// Open returns a read-only view over a PAKFILE lump's bytes.
func Open(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "open pakfile lump")
	}
	return r, nil
}

// ReadFile reads a single entry out of a PAKFILE lump by name (exact match,
// including path separators as stored).
func ReadFile(data []byte, name string) ([]byte, error) {
	r, err := Open(data)
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, bsperr.Wrap(bsperr.IO, err, "open %s in pakfile", name)
			}
			defer rc.Close()
			out, err := io.ReadAll(rc)
			if err != nil {
				return nil, bsperr.Wrap(bsperr.IO, err, "read %s in pakfile", name)
			}
			return out, nil
		}
	}
	return nil, bsperr.New(bsperr.IO, "%s not found in pakfile lump", name)
}

// Names lists every entry in a PAKFILE lump, in archive order.
func Names(data []byte) ([]string, error) {
	r, err := Open(data)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(r.File))
	for i, f := range r.File {
		names[i] = f.Name
	}
	return names, nil
}

// Build serializes a name->contents map into a new PAKFILE lump payload,
// stored with Deflate compression. Entries are written in sorted name
// order so the output is deterministic across calls with the same input.
func Build(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "create pakfile entry %s", name)
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "write pakfile entry %s", name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, bsperr.Wrap(bsperr.IO, err, "close pakfile")
	}
	return buf.Bytes(), nil
}

// Edit opens a PAKFILE lump, lets fn mutate a plain name->contents map
// seeded from the archive's current contents, and rebuilds the lump from
// the result. fn returning an error leaves the original bytes untouched
// and the error propagates; the partially built archive is discarded.
func Edit(data []byte, fn func(files map[string][]byte) error) ([]byte, error) {
	r, err := Open(data)
	if err != nil {
		return nil, err
	}
	files := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "open %s in pakfile", f.Name)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, bsperr.Wrap(bsperr.IO, err, "read %s in pakfile", f.Name)
		}
		files[f.Name] = content
	}

	if err := fn(files); err != nil {
		return nil, fmt.Errorf("edit pakfile: %w", err)
	}

	return Build(files)
}
