package formats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/bezier-teapot/pkg/bezier"
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

// Patch document errors.
var (
	ErrNoSurfaces           = errors.New("document has no surfaces")
	ErrSurfaceOrderMismatch = errors.New("surface order does not match its control grid")
	ErrPointArity           = errors.New("control point must have exactly 3 coordinates")
)

// TeapotDocument is a patch collection in the TeaSrfs layout.
type TeapotDocument struct {
	Surfaces []TeapotSurface `json:"TeaSrfs"`
}

// TeapotSurface is one Bezier patch. UOrder and VOrder count control
// points (degree + 1) and are optional; when set they must match the grid.
type TeapotSurface struct {
	UOrder        int       `json:"u_degree,omitempty"`
	UKnotType     string    `json:"u_knot_type,omitempty"`
	UBasis        string    `json:"u_basis,omitempty"`
	VOrder        int       `json:"v_degree,omitempty"`
	VKnotType     string    `json:"v_knot_type,omitempty"`
	VBasis        string    `json:"v_basis,omitempty"`
	ControlPoints [][]Point `json:"control_points"`
}

// Point is an [x, y, z] control point.
type Point [3]float32

// UnmarshalJSON rejects points that are not triples.
func (p *Point) UnmarshalJSON(data []byte) error {
	var coords []float32
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	if len(coords) != 3 {
		return fmt.Errorf("%w: got %d", ErrPointArity, len(coords))
	}
	copy(p[:], coords)
	return nil
}

// ParseTeapotJSON parses a JSON patch document.
func ParseTeapotJSON(data []byte) (*TeapotDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var doc TeapotDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding patch document: %w", err)
	}
	if len(doc.Surfaces) == 0 {
		return nil, ErrNoSurfaces
	}
	return &doc, nil
}

// LoadTeapot reads a patch document from disk. Files ending in .json are
// parsed as JSON, anything else as the surface()/array()/pt() notation.
func LoadTeapot(path string) (*TeapotDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading patch file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseTeapotJSON(data)
	}
	return ParseTeapotText(data)
}

// WriteJSON encodes the document as indented JSON.
func (d *TeapotDocument) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Rows converts the surface's control points to vectors.
func (s *TeapotSurface) Rows() [][]math.Vec3 {
	rows := make([][]math.Vec3, len(s.ControlPoints))
	for i, row := range s.ControlPoints {
		rows[i] = make([]math.Vec3, len(row))
		for j, p := range row {
			rows[i][j] = math.Vec3FromArray(p)
		}
	}
	return rows
}

// Grid validates the surface and returns its control grid.
func (s *TeapotSurface) Grid() (*bezier.Grid, error) {
	g, err := bezier.NewGrid(s.Rows())
	if err != nil {
		return nil, err
	}
	rows, cols := g.Size()
	if s.UOrder != 0 && s.UOrder != rows {
		return nil, fmt.Errorf("%w: u order %d, %d rows", ErrSurfaceOrderMismatch, s.UOrder, rows)
	}
	if s.VOrder != 0 && s.VOrder != cols {
		return nil, fmt.Errorf("%w: v order %d, %d columns", ErrSurfaceOrderMismatch, s.VOrder, cols)
	}
	return g, nil
}

// Patches returns the raw control point rows of every surface.
func (d *TeapotDocument) Patches() [][][]math.Vec3 {
	out := make([][][]math.Vec3, len(d.Surfaces))
	for i := range d.Surfaces {
		out[i] = d.Surfaces[i].Rows()
	}
	return out
}

// Grids validates every surface. The result is parallel to d.Surfaces:
// invalid surfaces leave a nil entry and are reported as *bezier.PatchError
// values joined into err. The grids are usable either way.
func (d *TeapotDocument) Grids() ([]*bezier.Grid, error) {
	grids := make([]*bezier.Grid, len(d.Surfaces))
	var errs []error
	for i := range d.Surfaces {
		g, err := d.Surfaces[i].Grid()
		if err != nil {
			errs = append(errs, &bezier.PatchError{Index: i, Err: err})
			continue
		}
		grids[i] = g
	}
	return grids, errors.Join(errs...)
}

// ValidGrids counts the non-nil entries of grids.
func ValidGrids(grids []*bezier.Grid) int {
	n := 0
	for _, g := range grids {
		if g != nil {
			n++
		}
	}
	return n
}
