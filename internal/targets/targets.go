package targets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// maxLineBytes bounds one line of a target file. Longer lines fail the read.
const maxLineBytes = 1 << 20

// Read parses one URL per line. Surrounding whitespace is trimmed, blank
// lines and lines starting with '#' are skipped. Order and duplicates are
// preserved.
func Read(r io.Reader) ([]domain.Target, error) {
	var out []domain.Target
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, domain.Target{URL: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}
	return out, nil
}

func Load(path string) ([]domain.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// FromStrings wraps already-known URLs, skipping blanks.
func FromStrings(urls []string) []domain.Target {
	out := make([]domain.Target, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, domain.Target{URL: u})
		}
	}
	return out
}
