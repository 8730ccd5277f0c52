// Package romloader handles loading content files from various sources,
// including compressed archives (ZIP, 7z, gzip, tar.gz, RAR).
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// DefaultMaxSize is the content size limit used when none is configured.
const DefaultMaxSize = 8 * 1024 * 1024

// ErrNoROMFile is returned when no matching file is found in an archive
var ErrNoROMFile = errors.New("no ROM file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrCorruptArchive is returned when an archive decoder fails on damaged
// input.
var ErrCorruptArchive = errors.New("corrupt archive")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// formatType represents the detected file format
type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

func (f formatType) String() string {
	switch f {
	case formatRaw:
		return ""
	case formatZIP:
		return "zip"
	case format7z:
		return "7z"
	case formatGzip:
		return "gzip"
	case formatRAR:
		return "rar"
	default:
		return "unknown"
	}
}

// Content is a loaded content file.
type Content struct {
	Data []byte

	// Name is the base name of the file the data came from. For archives
	// this is the member name.
	Name string

	// Archive is the container format ("zip", "7z", "gzip", "rar"), or
	// empty for a plain file.
	Archive string
}

// Loader reads content files, unpacking archives.
type Loader struct {
	extensions []string
	maxSize    int64
}

// New returns a Loader accepting files with the given extensions, with or
// without the leading dot. maxSize <= 0 selects DefaultMaxSize.
func New(extensions []string, maxSize int64) *Loader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, strings.ToLower(e))
	}
	return &Loader{extensions: exts, maxSize: maxSize}
}

// IsArchive reports whether path names an archive the Loader can unpack.
func (l *Loader) IsArchive(path string) bool {
	path, _ = splitMember(path)
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	header := make([]byte, 16)
	n, _ := io.ReadFull(f, header)
	switch detectFormat(header[:n], path, l.extensions) {
	case formatZIP, format7z, formatGzip, formatRAR:
		return true
	}
	return false
}

// Load reads content from a file path. It auto-detects compressed archives
// via magic bytes and extracts the first file matching one of the
// Loader's extensions. A path of the form "archive.zip#dir/game.sms"
// selects a specific archive member.
func (l *Loader) Load(path string) (*Content, error) {
	path, member := splitMember(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Read header for magic byte detection
	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	format := detectFormat(header, path, l.extensions)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek file: %w", err)
	}

	var (
		data []byte
		name string
	)
	switch format {
	case formatRaw:
		data, err = l.limitedRead(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read ROM: %w", err)
		}
		name = filepath.Base(path)
	case formatZIP:
		data, name, err = l.extractFromZIP(path, member)
	case format7z:
		data, name, err = l.extractFrom7z(path, member)
	case formatGzip:
		data, name, err = l.extractFromGzip(f, path, member)
	case formatRAR:
		data, name, err = l.extractFromRAR(path, member)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	return &Content{Data: data, Name: name, Archive: format.String()}, nil
}

// splitMember splits "archive#member" when the part before '#' exists on
// disk. Paths whose file names contain '#' are left alone.
func splitMember(path string) (string, string) {
	idx := strings.LastIndex(path, "#")
	if idx <= 0 {
		return path, ""
	}
	if _, err := os.Stat(path); err == nil {
		return path, ""
	}
	if _, err := os.Stat(path[:idx]); err != nil {
		return path, ""
	}
	return path[:idx], path[idx+1:]
}

// detectFormat determines the file format based on magic bytes and extension.
// The extensions parameter lists valid ROM file extensions (e.g. []string{".sms"}).
func detectFormat(header []byte, path string, extensions []string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	// Check magic bytes first (more reliable)
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	// Fall back to extension for archive formats
	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	for _, romExt := range extensions {
		if ext == strings.ToLower(romExt) {
			return formatRaw
		}
	}

	return formatUnknown
}

// matches reports whether an archive member should be extracted: the named
// member when one was requested, otherwise any file with a known extension.
func (l *Loader) matches(name, member string) bool {
	if member != "" {
		return name == member || filepath.Base(name) == member
	}
	return isROMFile(name, l.extensions)
}

// isROMFile checks if a filename has one of the given ROM extensions (case-insensitive)
func isROMFile(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to the Loader's size limit, returning an
// error if it is exceeded
func (l *Loader) limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, l.maxSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
