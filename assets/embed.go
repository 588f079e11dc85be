package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed fallback.txt migrations/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// FallbackList returns the embedded fallback words, uppercased.
func FallbackList() ([]string, error) {
	return readLines("fallback.txt")
}

// Migrations returns the embedded SQL migrations rooted at migrations/.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "migrations")
}
