// Package svt dumps and loads the line-oriented ASCII visualization format
// described in spec.md §6, generalizing matrix.ToEdgeList/ToMatrix's
// "walk core.Graph, emit a flat representation" idiom to the textual SVT
// round-trip instead of an in-memory matrix.
package svt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/gnp/core"
)

// ErrMalformed is returned by Load when the input does not follow the
// expected line-oriented format.
var ErrMalformed = errors.New("svt: malformed input")

const (
	delimiter   = "--------"
	namePrefix  = "Name:"
	pointsLine  = "Points:"
	edgesLine   = "Edges:"
	facesLine   = "Faces:"
	pointColor  = "Point color:"
	edgeColorPf = "Edge color:"
)

// Dump writes g to w in the SVT text format under the given name. Vertex
// indices in the Points/Edges/Faces blocks follow g.Vertices()'s
// insertion order, matching core.Graph.Edges' own deterministic-order
// convention.
func Dump(w io.Writer, g *core.Graph, name string) error {
	bw := bufio.NewWriter(w)

	ids := g.Vertices()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	fmt.Fprintln(bw, delimiter)
	fmt.Fprintf(bw, "%s %s\n", namePrefix, name)
	fmt.Fprintln(bw, pointsLine)
	for _, id := range ids {
		v, err := g.GetVertex(id)
		if err != nil {
			return err
		}
		writeFloats(bw, v.W)
	}
	fmt.Fprintln(bw, edgesLine)
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%d %d\n", index[e.U], index[e.V])
	}
	if faces := g.Faces(); len(faces) > 0 {
		fmt.Fprintln(bw, facesLine)
		for _, f := range faces {
			fmt.Fprintf(bw, "%d %d %d\n", index[f.A], index[f.B], index[f.C])
		}
	}
	fmt.Fprintln(bw, delimiter)

	return bw.Flush()
}

func writeFloats(bw *bufio.Writer, w []float64) {
	parts := make([]string, len(w))
	for i, x := range w {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	fmt.Fprintln(bw, strings.Join(parts, " "))
}

// Load parses an SVT text dump into a fresh *core.Graph, returning the
// dumped name alongside it. Point color/Edge color lines, if present, are
// skipped — GNP-core's graph carries no color attributes to restore.
func Load(r io.Reader) (*core.Graph, string, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != delimiter {
		return nil, "", fmt.Errorf("%w: missing opening delimiter", ErrMalformed)
	}

	var name string
	section := ""
	g := core.NewGraph()
	var ids []string

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == delimiter:
			return g, name, nil
		case strings.HasPrefix(line, namePrefix):
			name = strings.TrimSpace(strings.TrimPrefix(line, namePrefix))
		case line == pointsLine:
			section = "points"
		case line == edgesLine:
			section = "edges"
		case line == facesLine:
			section = "faces"
		case strings.HasPrefix(line, pointColor), strings.HasPrefix(line, edgeColorPf):
			// not modeled; skip.
		case line == "":
			// blank lines between sections are tolerated.
		default:
			switch section {
			case "points":
				w, err := parseFloats(line)
				if err != nil {
					return nil, "", err
				}
				v := g.AddVertex(w)
				ids = append(ids, v.ID)
			case "edges":
				i, j, err := parseIndexPair(line)
				if err != nil {
					return nil, "", err
				}
				if i < 0 || i >= len(ids) || j < 0 || j >= len(ids) {
					return nil, "", fmt.Errorf("%w: edge index out of range: %q", ErrMalformed, line)
				}
				if _, err := g.AddEdge(ids[i], ids[j]); err != nil {
					return nil, "", err
				}
			case "faces":
				a, b, c, err := parseIndexTriple(line)
				if err != nil {
					return nil, "", err
				}
				if a < 0 || a >= len(ids) || b < 0 || b >= len(ids) || c < 0 || c >= len(ids) {
					return nil, "", fmt.Errorf("%w: face index out of range: %q", ErrMalformed, line)
				}
				g.AddFace(ids[a], ids[b], ids[c])
			default:
				return nil, "", fmt.Errorf("%w: data line outside any section: %q", ErrMalformed, line)
			}
		}
	}

	return nil, "", fmt.Errorf("%w: missing closing delimiter", ErrMalformed)
}

func parseFloats(line string) ([]float64, error) {
	fields := strings.Fields(line)
	out := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, line, err)
		}
		out[i] = x
	}
	return out, nil
}

func parseIndexPair(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: edge line %q: expected 2 fields", ErrMalformed, line)
	}
	i, err1 := strconv.Atoi(fields[0])
	j, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: edge line %q: non-integer index", ErrMalformed, line)
	}
	return i, j, nil
}

func parseIndexTriple(line string) (int, int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: face line %q: expected 3 fields", ErrMalformed, line)
	}
	idx := make([]int, 3)
	for k, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: face line %q: non-integer index", ErrMalformed, line)
		}
		idx[k] = n
	}
	return idx[0], idx[1], idx[2], nil
}
