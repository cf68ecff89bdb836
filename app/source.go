package app

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

//go:embed sample.json
var sampleJSON []byte

// Source supplies the value shown in the modal.
type Source interface {
	// Name describes the source on the page.
	Name() string
	// Load returns the current value. Text sources return the raw text.
	Load() (any, error)
}

// SampleSource is the built-in sample document.
type SampleSource struct{}

func (SampleSource) Name() string { return "built-in sample" }

// Load returns the sample as raw JSON so its key order survives formatting.
func (SampleSource) Load() (any, error) {
	return json.RawMessage(sampleJSON), nil
}

// FileSource reads a file on every Load, so reloads pick up edits.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return filepath.Base(s.Path) }

func (s FileSource) Load() (any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return string(data), nil
}

// ReaderSource reads r once and serves the same text afterwards.
type ReaderSource struct {
	name string
	r    io.Reader

	once sync.Once
	text string
	err  error
}

func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

func (s *ReaderSource) Name() string { return s.name }

func (s *ReaderSource) Load() (any, error) {
	s.once.Do(func() {
		data, err := io.ReadAll(s.r)
		if err != nil {
			s.err = fmt.Errorf("failed to read %s: %w", s.name, err)
			return
		}
		s.text = string(data)
	})
	if s.err != nil {
		return nil, s.err
	}
	return s.text, nil
}

// ResolveSource picks the input: an explicit path ("-" is stdin), then the configured
// sample file, then the built-in sample.
func ResolveSource(path string, sampleFile string, stdin io.Reader) Source {
	switch {
	case path == "-":
		return NewReaderSource("stdin", stdin)
	case path != "":
		return FileSource{Path: path}
	case sampleFile != "":
		return FileSource{Path: sampleFile}
	default:
		return SampleSource{}
	}
}
