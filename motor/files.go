package motor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// MaxHARSize bounds how much of a HAR file is read into memory.
	MaxHARSize = 512 * 1024 * 1024 // 512MB

	DefaultEncoding  = "utf-8"
	DefaultExtension = ".lua"

	// Stdout as an output path writes the script to standard output.
	Stdout = "-"
)

// Source is a HAR file decoded to UTF-8 text.
type Source struct {
	Path     string
	Encoding string
	Text     []byte
	Size     int64  // raw bytes on disk
	Hash     string // xxhash of the raw bytes
}

// LookupEncoding resolves a charset label such as "utf-8", "latin1" or "windows-1251".
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// ReadHAR reads a HAR file and decodes it from the named charset to UTF-8.
func ReadHAR(path, encodingName string) (*Source, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HAR file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, MaxHARSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read HAR file: %w", err)
	}
	if len(raw) > MaxHARSize {
		return nil, fmt.Errorf("HAR file %s exceeds maximum size of %d bytes", path, MaxHARSize)
	}

	text, err := decodeText(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HAR file as %s: %w", encodingName, err)
	}

	return &Source{
		Path:     path,
		Encoding: encodingName,
		Text:     text,
		Size:     int64(len(raw)),
		Hash:     fmt.Sprintf("%016x", xxhash.Sum64(raw)),
	}, nil
}

// decodeText converts raw to UTF-8, honouring a byte order mark when present.
func decodeText(raw []byte, enc encoding.Encoding) ([]byte, error) {
	decoder := unicode.BOMOverride(enc.NewDecoder())
	return io.ReadAll(transform.NewReader(bytes.NewReader(raw), decoder))
}

// WriteScript writes the generated script to path, creating parent directories.
func WriteScript(path, script string) error {
	if path == Stdout {
		_, err := io.WriteString(os.Stdout, script)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}

// DefaultOutputName derives the script name from the HAR name: "dir/session.har" becomes
// "dir/session.lua".
func DefaultOutputName(input, extension string) string {
	if extension == "" {
		extension = DefaultExtension
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	base := filepath.Base(input)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return filepath.Join(filepath.Dir(input), base+extension)
}
