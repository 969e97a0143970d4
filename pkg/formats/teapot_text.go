package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// ErrTeapotSyntax is returned for malformed surface notation.
var ErrTeapotSyntax = errors.New("teapot syntax error")

// ParseTeapotText parses the Newell/Blinn surface notation:
//
//	TeaSrfs: array(
//	    surface( 4, "ec_open", "kv_bezier", 4, "ec_open", "kv_bezier",
//	        array( array( pt( 1.4, 2.25, 0.0 ), ... ), ... ) ),
//	    ... );
//
// Lines starting with '#' are comments. The leading "name:" label and the
// trailing ';' are optional.
func ParseTeapotText(data []byte) (*TeapotDocument, error) {
	p := &textParser{}
	p.s.Init(bytes.NewReader(stripHashComments(data)))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("%w at %s: %s", ErrTeapotSyntax, s.Position, msg)
		}
	}
	p.next()

	doc, err := p.document()
	if err != nil {
		return nil, err
	}
	if len(doc.Surfaces) == 0 {
		return nil, ErrNoSurfaces
	}
	return doc, nil
}

// stripHashComments blanks '#' comment lines but keeps line numbers.
func stripHashComments(data []byte) []byte {
	var out bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			line = ""
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

type textParser struct {
	s   scanner.Scanner
	tok rune
	err error
}

func (p *textParser) next() {
	p.tok = p.s.Scan()
}

func (p *textParser) fail(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	p.err = fmt.Errorf("%w at %s: %s", ErrTeapotSyntax, p.s.Position, fmt.Sprintf(format, args...))
	return p.err
}

func (p *textParser) expect(r rune) error {
	if p.err != nil {
		return p.err
	}
	if p.tok != r {
		return p.fail("expected %q, found %q", scanner.TokenString(r), p.s.TokenText())
	}
	p.next()
	return nil
}

func (p *textParser) keyword(word string) error {
	if p.err != nil {
		return p.err
	}
	if p.tok != scanner.Ident || p.s.TokenText() != word {
		return p.fail("expected %s, found %q", word, p.s.TokenText())
	}
	p.next()
	return nil
}

// call parses "word(" and returns after the open paren.
func (p *textParser) call(word string) error {
	if err := p.keyword(word); err != nil {
		return err
	}
	return p.expect('(')
}

// list parses comma separated items up to and including ')'.
func (p *textParser) list(item func() error) error {
	for {
		if err := item(); err != nil {
			return err
		}
		if p.tok == ',' {
			p.next()
			continue
		}
		return p.expect(')')
	}
}

func (p *textParser) document() (*TeapotDocument, error) {
	// Optional "TeaSrfs:" label.
	if p.tok == scanner.Ident && p.s.TokenText() != "array" {
		p.next()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
	}
	if err := p.call("array"); err != nil {
		return nil, err
	}

	doc := &TeapotDocument{}
	err := p.list(func() error {
		s, err := p.surface()
		if err != nil {
			return err
		}
		doc.Surfaces = append(doc.Surfaces, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if p.tok == ';' {
		p.next()
	}
	if p.tok != scanner.EOF {
		return nil, p.fail("unexpected %q after surfaces", p.s.TokenText())
	}
	return doc, p.err
}

func (p *textParser) surface() (TeapotSurface, error) {
	var s TeapotSurface
	if err := p.call("surface"); err != nil {
		return s, err
	}

	var err error
	if s.UOrder, err = p.integer(); err != nil {
		return s, err
	}
	if s.UKnotType, err = p.str(); err != nil {
		return s, err
	}
	if s.UBasis, err = p.str(); err != nil {
		return s, err
	}
	if s.VOrder, err = p.integer(); err != nil {
		return s, err
	}
	if s.VKnotType, err = p.str(); err != nil {
		return s, err
	}
	if s.VBasis, err = p.str(); err != nil {
		return s, err
	}

	if err := p.call("array"); err != nil {
		return s, err
	}
	err = p.list(func() error {
		row, err := p.row()
		if err != nil {
			return err
		}
		s.ControlPoints = append(s.ControlPoints, row)
		return nil
	})
	if err != nil {
		return s, err
	}
	return s, p.expect(')')
}

func (p *textParser) row() ([]Point, error) {
	if err := p.call("array"); err != nil {
		return nil, err
	}
	var row []Point
	err := p.list(func() error {
		pt, err := p.point()
		if err != nil {
			return err
		}
		row = append(row, pt)
		return nil
	})
	return row, err
}

func (p *textParser) point() (Point, error) {
	var pt Point
	if err := p.call("pt"); err != nil {
		return pt, err
	}
	for k := 0; k < 3; k++ {
		if k > 0 {
			if err := p.expect(','); err != nil {
				return pt, err
			}
		}
		f, err := p.number()
		if err != nil {
			return pt, err
		}
		pt[k] = float32(f)
	}
	return pt, p.expect(')')
}

// integer parses a surface parameter and the comma after it.
func (p *textParser) integer() (int, error) {
	neg := p.sign()
	if p.tok != scanner.Int {
		return 0, p.fail("expected integer, found %q", p.s.TokenText())
	}
	n, err := strconv.Atoi(p.s.TokenText())
	if err != nil {
		return 0, p.fail("bad integer %q", p.s.TokenText())
	}
	p.next()
	if neg {
		n = -n
	}
	return n, p.expect(',')
}

// str parses a quoted surface parameter and the comma after it.
func (p *textParser) str() (string, error) {
	if p.tok != scanner.String {
		return "", p.fail("expected string, found %q", p.s.TokenText())
	}
	v, err := strconv.Unquote(p.s.TokenText())
	if err != nil {
		return "", p.fail("bad string %s", p.s.TokenText())
	}
	p.next()
	return v, p.expect(',')
}

func (p *textParser) number() (float64, error) {
	neg := p.sign()
	if p.tok != scanner.Float && p.tok != scanner.Int {
		return 0, p.fail("expected number, found %q", p.s.TokenText())
	}
	f, err := strconv.ParseFloat(p.s.TokenText(), 64)
	if err != nil {
		return 0, p.fail("bad number %q", p.s.TokenText())
	}
	p.next()
	if neg {
		f = -f
	}
	return f, nil
}

func (p *textParser) sign() bool {
	switch p.tok {
	case '-':
		p.next()
		return true
	case '+':
		p.next()
	}
	return false
}
