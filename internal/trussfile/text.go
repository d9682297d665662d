// Package trussfile reads and writes truss descriptions.
//
// The text format is line oriented and tab delimited:
//
//	Warren Bridge % Your Names
//	4 % Number of Nodes
//	5 % Number of Elements
//
//	Node position
//	number	xvalue	yvalue
//	1	0	0
//	...
//
//	Elements
//	number	node1	node2
//	1	1	2
//	...
//
//	Displacements
//	3 % Number of displacement boundary conditions
//	node#	(x=1, y=2)	value
//	1	1	0
//	1	2	0
//	...
//
// The name is the whole first line up to the % marker. Line breaks and tabs
// in a name are written as single spaces and % as _.
package trussfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

// Section headers of the text format
const (
	SectionNodes         = "Node position"
	SectionElements      = "Elements"
	SectionDisplacements = "Displacements"
)

// Parse error kinds
var (
	ErrMissingHeader  = errors.New("missing header line")
	ErrMissingSection = errors.New("missing section")
	ErrShortRow       = errors.New("row has too few columns")
	ErrBadNumber      = errors.New("invalid number")
	ErrUnknownNode    = errors.New("unknown node")
	ErrBadAxis        = errors.New("invalid axis code (want 1 for x or 2 for y)")
	ErrInvalidEntry   = errors.New("invalid entry")
)

// ParseError reports where a truss file is malformed
type ParseError struct {
	Line    int    // 1-based, 0 when the whole file is concerned
	Section string // section or header being read
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Section, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// textReader walks the lines of a text truss file
type textReader struct {
	lines []string
}

func (r *textReader) errorf(line int, section string, kind error, format string, args ...any) error {
	return &ParseError{Line: line, Section: section, Err: fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)}
}

// headerName returns the text of the first line before its % marker
func (r *textReader) headerName() (string, error) {
	if len(r.lines) == 0 {
		return "", &ParseError{Line: 1, Section: "name", Err: ErrMissingHeader}
	}
	name, _, _ := strings.Cut(r.lines[0], "%")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ParseError{Line: 1, Section: "name", Err: ErrMissingHeader}
	}
	return name, nil
}

// headerValue returns the first space separated token of a header line
func (r *textReader) headerValue(i int, what string) (string, error) {
	if i >= len(r.lines) {
		return "", &ParseError{Line: i + 1, Section: what, Err: ErrMissingHeader}
	}
	fields := strings.Fields(r.lines[i])
	if len(fields) == 0 || strings.HasPrefix(fields[0], "%") {
		return "", &ParseError{Line: i + 1, Section: what, Err: ErrMissingHeader}
	}
	return fields[0], nil
}

func (r *textReader) headerCount(i int, what string) (int, error) {
	v, err := r.headerValue(i, what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, r.errorf(i+1, what, ErrBadNumber, "%q", v)
	}
	return n, nil
}

func (r *textReader) findSection(name string) (int, error) {
	for i, line := range r.lines {
		if strings.HasPrefix(strings.TrimSpace(line), name) {
			return i, nil
		}
	}
	return 0, &ParseError{Section: name, Err: ErrMissingSection}
}

// row returns the tab separated columns of line i, requiring at least n
func (r *textReader) row(i, n int, section string) ([]string, error) {
	if i >= len(r.lines) {
		return nil, r.errorf(i+1, section, ErrShortRow, "unexpected end of file")
	}
	cols := strings.Split(r.lines[i], "\t")
	for k := range cols {
		cols[k] = strings.TrimSpace(cols[k])
	}
	if len(cols) < n || cols[0] == "" {
		return nil, r.errorf(i+1, section, ErrShortRow, "want %d columns, got %q", n, r.lines[i])
	}
	return cols, nil
}

func (r *textReader) float(i int, section, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, r.errorf(i+1, section, ErrBadNumber, "%q", v)
	}
	return f, nil
}

// ReadText parses the tab delimited truss format
func ReadText(in io.Reader) (*truss.Truss, error) {
	r := &textReader{}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		r.lines = append(r.lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	name, err := r.headerName()
	if err != nil {
		return nil, err
	}
	numNodes, err := r.headerCount(1, "number of nodes")
	if err != nil {
		return nil, err
	}
	numMembers, err := r.headerCount(2, "number of elements")
	if err != nil {
		return nil, err
	}

	t := truss.New(name)

	start, err := r.findSection(SectionNodes)
	if err != nil {
		return nil, err
	}
	for i := start + 2; i < start+2+numNodes; i++ {
		cols, err := r.row(i, 3, SectionNodes)
		if err != nil {
			return nil, err
		}
		x, err := r.float(i, SectionNodes, cols[1])
		if err != nil {
			return nil, err
		}
		y, err := r.float(i, SectionNodes, cols[2])
		if err != nil {
			return nil, err
		}
		if _, err := t.AddNode(truss.Node{ID: cols[0], X: x, Y: y}); err != nil {
			return nil, r.errorf(i+1, SectionNodes, ErrInvalidEntry, "%w", err)
		}
	}

	start, err = r.findSection(SectionElements)
	if err != nil {
		return nil, err
	}
	for i := start + 2; i < start+2+numMembers; i++ {
		cols, err := r.row(i, 3, SectionElements)
		if err != nil {
			return nil, err
		}
		for _, end := range cols[1:3] {
			if _, ok := t.Node(end); !ok {
				return nil, r.errorf(i+1, SectionElements, ErrUnknownNode, "%q", end)
			}
		}
		if _, err := t.AddMember(cols[0], cols[1], cols[2]); err != nil {
			return nil, r.errorf(i+1, SectionElements, ErrInvalidEntry, "%w", err)
		}
	}

	start, err = r.findSection(SectionDisplacements)
	if err != nil {
		return nil, err
	}
	numDisp, err := r.headerCount(start+1, "number of displacements")
	if err != nil {
		return nil, err
	}
	for i := start + 3; i < start+3+numDisp; i++ {
		cols, err := r.row(i, 2, SectionDisplacements)
		if err != nil {
			return nil, err
		}
		if _, ok := t.Node(cols[0]); !ok {
			return nil, r.errorf(i+1, SectionDisplacements, ErrUnknownNode, "%q", cols[0])
		}
		var axis truss.Axis
		switch cols[1] {
		case "1":
			axis = truss.AxisX
		case "2":
			axis = truss.AxisY
		default:
			return nil, r.errorf(i+1, SectionDisplacements, ErrBadAxis, "%q", cols[1])
		}
		if err := t.SetSupport(cols[0], axis, true); err != nil {
			return nil, r.errorf(i+1, SectionDisplacements, ErrInvalidEntry, "%w", err)
		}
	}

	return t, nil
}

// WriteText writes t in the tab delimited truss format
func WriteText(out io.Writer, t *truss.Truss) error {
	w := bufio.NewWriter(out)

	name := strings.ReplaceAll(strings.Join(strings.Fields(t.Name), " "), "%", "_")
	if name == "" {
		name = "Truss"
	}
	fmt.Fprintf(w, "%s %% Your Names\n", name)
	fmt.Fprintf(w, "%d %% Number of Nodes\n", t.NumNodes())
	fmt.Fprintf(w, "%d %% Number of Elements\n\n\n", t.NumMembers())

	fmt.Fprintf(w, "%s\nnumber\txvalue\tyvalue\n", SectionNodes)
	for _, n := range t.Nodes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, formatFloat(n.X), formatFloat(n.Y))
	}

	fmt.Fprintf(w, "\n\n\n%s\nnumber\tnode1\tnode2\n", SectionElements)
	for _, m := range t.Members() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.A, m.B)
	}

	fmt.Fprintf(w, "\n\n\n%s\n%d %% Number of displacement boundary conditions\n", SectionDisplacements, t.NumDisplacements())
	fmt.Fprintf(w, "node#\t(x=1, y=2)\tvalue\n")
	for _, n := range t.Nodes() {
		if n.SupportX {
			fmt.Fprintf(w, "%s\t1\t0\n", n.ID)
		}
		if n.SupportY {
			fmt.Fprintf(w, "%s\t2\t0\n", n.ID)
		}
	}

	return w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
