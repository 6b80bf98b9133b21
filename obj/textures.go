package obj

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// TextureSet is the master list of texture names terrain records may use.
type TextureSet map[string]struct{}

func NewTextureSet(names ...string) TextureSet {
	ts := make(TextureSet, len(names))
	for _, n := range names {
		ts[n] = struct{}{}
	}
	return ts
}

// LoadTextureSet reads one name per line, skipping comments.
func LoadTextureSet(r io.Reader) (TextureSet, error) {
	ts := TextureSet{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if isComment(line) {
			continue
		}
		ts[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: read textures: %w", err)
	}
	return ts, nil
}

func (ts TextureSet) Has(name string) bool {
	_, ok := ts[name]
	return ok
}

func (ts TextureSet) Len() int { return len(ts) }

// Names returns the names sorted.
func (ts TextureSet) Names() []string {
	out := make([]string, 0, len(ts))
	for n := range ts {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
