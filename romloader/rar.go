package romloader

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

// extractFromRAR extracts the first matching file from a RAR archive
func (l *Loader) extractFromRAR(path, member string) (data []byte, name string, err error) {
	// rardecode can panic on corrupted headers, including inside OpenReader
	defer func() {
		if p := recover(); p != nil {
			data, name, err = nil, "", fmt.Errorf("%w: rar: %v", ErrCorruptArchive, p)
		}
	}()

	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read rar entry: %w", err)
		}

		if header.IsDir || !l.matches(header.Name, member) {
			continue
		}

		data, err := l.limitedRead(r)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoROMFile
}
