package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// FileSystem abstracts the handful of filesystem calls a loader needs,
// so tests can supply an in-memory stand-in instead of touching disk.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// osFS is the default FileSystem, backed by os.ReadFile.
type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS returns the real-disk FileSystem.
func DefaultFS() FileSystem { return osFS{} }

// TOMLLoader reads one TOML document into an untyped map, the same
// loosely-typed intermediate form a later merge pass needs before it's
// finally decoded into Settings.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader returns a loader reading through fs. A nil fs uses
// the real filesystem.
func NewTOMLLoader(fs FileSystem) *TOMLLoader {
	if fs == nil {
		fs = DefaultFS()
	}
	return &TOMLLoader{fs: fs}
}

// LoadFile reads path and parses it as TOML. A missing file is not an
// error — it yields a nil map, matching the convention every loader in
// this package follows so a caller can unconditionally DeepMerge the
// result.
func (l *TOMLLoader) LoadFile(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadReader parses TOML read from r.
func (l *TOMLLoader) LoadReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *TOMLLoader) parse(source string, data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return doc, nil
}

// DeepMerge recursively merges src into dst; values in src win. Maps
// merge key by key; anything else (including slices) is replaced
// wholesale rather than concatenated, matching a "later layer fully
// overrides this key" semantics.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}
	return dst
}

// decodeInto re-marshals a merged document and decodes it into a
// Settings value, so the zero value of any field the document never
// mentioned keeps whatever the caller seeded target with (the layered
// defaults, typically).
func decodeInto(doc map[string]any, target *Settings) error {
	if doc == nil {
		return nil
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("re-encoding merged config: %w", err)
	}
	if _, err := toml.Decode(string(data), target); err != nil {
		return fmt.Errorf("decoding merged config: %w", err)
	}
	return nil
}
