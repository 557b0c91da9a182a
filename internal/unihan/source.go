package unihan

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source answers kCangjie lookups. An empty reading with a nil error
// means the character has none.
type Source interface {
	KCangjie(ch rune) (string, error)
}

// FileSource serves lookups from a Unihan data file on disk, the
// tab-separated format of the Unicode distribution:
//
//	U+4E00	kCangjie	M
type FileSource struct {
	codes map[rune]string
}

// LoadFileSource reads a Unihan data file, keeping only kCangjie rows.
// Comment lines and fields other than kCangjie are skipped.
func LoadFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening unihan data: %w", err)
	}
	defer f.Close()

	s := &FileSource{codes: make(map[rune]string)}
	sc := bufio.NewScanner(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 || parts[1] != "kCangjie" {
			continue
		}
		cp, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "U+"), 16, 32)
		if err != nil {
			continue
		}
		s.codes[rune(cp)] = strings.TrimSpace(parts[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading unihan data: %w", err)
	}
	return s, nil
}

// KCangjie returns the reading recorded for ch, empty when the file has
// none.
func (s *FileSource) KCangjie(ch rune) (string, error) {
	return s.codes[ch], nil
}

// Len returns the number of characters with a reading.
func (s *FileSource) Len() int {
	return len(s.codes)
}
