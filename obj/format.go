package obj

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxCoord bounds record coordinates so snapping stays in int range.
const maxCoord = 1 << 30

var (
	errMalformed      = errors.New("malformed record")
	errUnknownTexture = errors.New("unknown texture")
)

// isComment reports lines that carry no record: blanks and lines starting
// with ';' or '/'.
func isComment(line string) bool {
	return line == "" || line[0] == ';' || line[0] == '/'
}

func parseRecord(kind Kind, line string, textures TextureSet) (*Tile, error) {
	prefix, coords, hasPrefix := "", line, false
	if i := strings.LastIndexByte(line, ':'); i >= 0 {
		prefix, coords, hasPrefix = strings.TrimSpace(line[:i]), line[i+1:], true
	}
	x, y, err := parseCoords(coords)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", errMalformed, line, err)
	}
	t := NewTile(x, y)

	switch kind {
	case Terrain:
		if !hasPrefix || prefix == "" {
			return nil, fmt.Errorf("%w %q: missing texture name", errMalformed, line)
		}
		if textures != nil && !textures.Has(prefix) {
			return nil, fmt.Errorf("%w %q", errUnknownTexture, prefix)
		}
		t.Texture = prefix
	case Collision:
		t.Pass = Wall
		if hasPrefix {
			switch strings.ToLower(prefix) {
			case "wall":
			case "hole":
				t.Pass = Hole
			case "floor":
				t.Pass = Floor
			default:
				return nil, fmt.Errorf("%w %q: unknown passability %q", errMalformed, line, prefix)
			}
		}
	case Objective:
		if !hasPrefix {
			return nil, fmt.Errorf("%w %q: missing attribute code", errMalformed, line)
		}
		code, err := strconv.Atoi(prefix)
		if err != nil || !Attribute(code).Valid() {
			return nil, fmt.Errorf("%w %q: bad attribute code %q", errMalformed, line, prefix)
		}
		t.Attr = Attribute(code)
	}
	return t, nil
}

func parseCoords(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New("want x,y")
	}
	x, err := parseCoord(xs)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseCoord(ys)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v) > maxCoord {
		return 0, fmt.Errorf("coordinate %q out of range", s)
	}
	return v, nil
}

func formatRecord(kind Kind, t *Tile, x, y int) string {
	switch kind {
	case Terrain:
		return fmt.Sprintf("%s:%d,%d", t.Texture, x, y)
	case Collision:
		if t.Pass == Wall {
			return fmt.Sprintf("%d,%d", x, y)
		}
		return fmt.Sprintf("%s:%d,%d", t.Pass, x, y)
	case Objective:
		return fmt.Sprintf("%d:%d,%d", int(t.Attr), x, y)
	}
	return ""
}
