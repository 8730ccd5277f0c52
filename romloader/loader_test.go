package romloader

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var testExtensions = []string{"bin", "md"}

type member struct {
	name string
	data []byte
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func zipBytes(t *testing.T, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, m := range members {
		fw, err := w.Create(m.name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", m.name, err)
		}
		fw.Write(m.data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(data)
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	return buf.Bytes()
}

func tarBytes(t *testing.T, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tar.NewWriter(&buf)
	for _, m := range members {
		hdr := &tar.Header{Name: m.name, Mode: 0644, Size: int64(len(m.data)), Typeflag: tar.TypeReg}
		if err := w.WriteHeader(hdr); err != nil {
			t.Fatalf("Failed to write tar header: %v", err)
		}
		w.Write(m.data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close tar: %v", err)
	}
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	rom := []byte{0x10, 0x20, 0x30, 0x40}
	other := []byte{0x99}

	tests := []struct {
		name     string
		file     string
		contents []byte
		suffix   string
		wantData []byte
		wantName string
		archive  string
	}{
		{"raw", "game.bin", rom, "", rom, "game.bin", ""},
		{"raw upper case", "GAME.MD", rom, "", rom, "GAME.MD", ""},
		{"empty raw", "empty.bin", []byte{}, "", []byte{}, "empty.bin", ""},
		{"zip", "pack.zip", zipBytes(t, member{"readme.txt", other}, member{"game.md", rom}), "", rom, "game.md", "zip"},
		{"zip subdirectory", "pack.zip", zipBytes(t, member{"roms/usa/game.bin", rom}), "", rom, "game.bin", "zip"},
		{"zip member", "pack.zip", zipBytes(t, member{"a.bin", other}, member{"disk/b.bin", rom}), "#b.bin", rom, "b.bin", "zip"},
		{"zip without extension", "pack.dat", zipBytes(t, member{"game.bin", rom}), "", rom, "game.bin", "zip"},
		{"gzip", "game.md.gz", gzipBytes(t, rom), "", rom, "game.md", "gzip"},
		{"tar.gz", "pack.tar.gz", gzipBytes(t, tarBytes(t, member{"notes.txt", other}, member{"game.bin", rom})), "", rom, "game.bin", "gzip"},
		{"tgz member", "pack.tgz", gzipBytes(t, tarBytes(t, member{"a.bin", other}, member{"b.bin", rom})), "#b.bin", rom, "b.bin", "gzip"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.contents)
			c, err := New(testExtensions, 0).Load(path + tc.suffix)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !bytes.Equal(c.Data, tc.wantData) {
				t.Errorf("Data = %v, want %v", c.Data, tc.wantData)
			}
			if c.Name != tc.wantName {
				t.Errorf("Name = %q, want %q", c.Name, tc.wantName)
			}
			if c.Archive != tc.archive {
				t.Errorf("Archive = %q, want %q", c.Archive, tc.archive)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents []byte
		suffix   string
		maxSize  int64
		want     error
	}{
		{"no rom in zip", "pack.zip", zipBytes(t, member{"readme.txt", []byte("hi")}), "", 0, ErrNoROMFile},
		{"missing member", "pack.zip", zipBytes(t, member{"a.bin", []byte{1}}), "#b.bin", 0, ErrNoROMFile},
		{"no rom in tar", "pack.tgz", gzipBytes(t, tarBytes(t, member{"a.txt", []byte{1}})), "", 0, ErrNoROMFile},
		{"unknown extension", "game.xyz", []byte{1, 2, 3}, "", 0, ErrUnsupportedFormat},
		{"raw too large", "game.bin", make([]byte, 64), "", 32, ErrFileTooLarge},
		{"gzip too large", "game.bin.gz", gzipBytes(t, make([]byte, 64)), "", 32, ErrFileTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.contents)
			_, err := New(testExtensions, tc.maxSize).Load(path + tc.suffix)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := New(testExtensions, 0).Load("/nonexistent/game.bin"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadSizeLimitIsInclusive(t *testing.T) {
	path := writeFile(t, "game.bin", make([]byte, 64))
	c, err := New(testExtensions, 64).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Data) != 64 {
		t.Errorf("got %d bytes, want 64", len(c.Data))
	}
}

func TestMemberPathWithHash(t *testing.T) {
	rom := []byte{0x42}
	path := writeFile(t, "game#1.bin", rom)

	c, err := New(testExtensions, 0).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Name != "game#1.bin" || !bytes.Equal(c.Data, rom) {
		t.Errorf("unexpected content %q %v", c.Name, c.Data)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		header []byte
		path   string
		want   formatType
	}{
		{magicZIP, "file.dat", formatZIP},
		{magicZIPEnd, "file.dat", formatZIP},
		{magic7z, "file.dat", format7z},
		{magicGzip, "file.dat", formatGzip},
		{magicRAR, "file.dat", formatRAR},
		{nil, "game.BIN", formatRaw},
		{nil, "game.md", formatRaw},
		{nil, "game.ZIP", formatZIP},
		{nil, "game.7z", format7z},
		{nil, "game.tgz", formatGzip},
		{nil, "game.tar.gz", formatGzip},
		{nil, "game.rar", formatRAR},
		{nil, "game.sms", formatUnknown},
		{[]byte{0x00, 0x01, 0x02, 0x03}, "game.bin", formatRaw},
	}

	for _, tc := range tests {
		if got := detectFormat(tc.header, tc.path, New(testExtensions, 0).extensions); got != tc.want {
			t.Errorf("detectFormat(%x, %s) = %v, want %v", tc.header, tc.path, got, tc.want)
		}
	}
}

func TestIsROMFile(t *testing.T) {
	exts := New(testExtensions, 0).extensions
	tests := map[string]bool{
		"game.bin":     true,
		"game.BIN":     true,
		"dir/game.md":  true,
		".bin":         true,
		"game.bin.bak": false,
		"game.txt":     false,
		"bin":          false,
	}
	for name, want := range tests {
		if got := isROMFile(name, exts); got != want {
			t.Errorf("isROMFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewNormalizesExtensions(t *testing.T) {
	l := New([]string{"SMS", ".gg", ""}, 0)
	if len(l.extensions) != 2 || l.extensions[0] != ".sms" || l.extensions[1] != ".gg" {
		t.Errorf("extensions = %v, want [.sms .gg]", l.extensions)
	}
	if l.maxSize != DefaultMaxSize {
		t.Errorf("maxSize = %d, want %d", l.maxSize, DefaultMaxSize)
	}
}

func TestIsArchive(t *testing.T) {
	l := New(testExtensions, 0)
	if !l.IsArchive(writeFile(t, "pack.zip", zipBytes(t, member{"game.bin", []byte{1}}))) {
		t.Error("zip should be an archive")
	}
	if !l.IsArchive(writeFile(t, "pack.zip", zipBytes(t, member{"game.bin", []byte{1}})) + "#game.bin") {
		t.Error("member path should resolve to its archive")
	}
	if l.IsArchive(writeFile(t, "game.bin", []byte{1})) {
		t.Error("raw content should not be an archive")
	}
	if l.IsArchive("/nonexistent/game.zip") {
		t.Error("missing file should not be an archive")
	}
}
