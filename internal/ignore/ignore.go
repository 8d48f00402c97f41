// Package ignore reads .latebindignore files: one pattern per line, '#'
// comments, trailing '/' for directories, doublestar globs otherwise.
package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at the scan root.
const FileName = ".latebindignore"

// Matcher holds compiled ignore patterns. The zero value matches nothing.
type Matcher struct {
	patterns []string
}

// Load reads patterns from path. On error it returns an empty Matcher along
// with the error, so callers may ignore a missing file.
func Load(p string) (Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	var m Matcher
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.Add(sc.Text())
	}
	return m, sc.Err()
}

// Add appends one raw pattern line.
func (m *Matcher) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	line = strings.TrimPrefix(line, "./")
	if strings.HasSuffix(line, "/") {
		dir := strings.TrimSuffix(line, "/")
		m.patterns = append(m.patterns, dir+"/**", "**/"+dir+"/**")
		return
	}
	m.patterns = append(m.patterns, line)
	if !strings.Contains(line, "/") {
		m.patterns = append(m.patterns, "**/"+line)
	}
}

// Match reports whether a slash-separated relative path is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./")
	base := path.Base(rel)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}

// Len is the number of compiled patterns.
func (m Matcher) Len() int { return len(m.patterns) }
