// Package termsurface draws widget trees onto a grid of terminal cells. One
// surface unit is one cell; text is measured with Face so that labels and
// buttons size themselves in cells.
package termsurface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// Cell is one character position. Rune 0 marks the second half of a wide
// rune.
type Cell struct {
	Rune rune
	FG   theme.Color
	BG   theme.Color
}

type rect struct{ x0, y0, x1, y1 int }

func (r rect) intersect(o rect) rect {
	return rect{max(r.x0, o.x0), max(r.y0, o.y0), min(r.x1, o.x1), min(r.y1, o.y1)}
}

func (r rect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// Surface is a render.Surface backed by a cell grid.
type Surface struct {
	cols, rows int
	cells      []Cell
	clips      []rect
	background theme.Color
}

var _ render.Surface = (*Surface)(nil)

// New creates a cols x rows surface cleared to white.
func New(cols, rows int) *Surface {
	s := &Surface{background: theme.White}
	s.Resize(cols, rows)
	return s
}

// Size returns the grid size in cells.
func (s *Surface) Size() (cols, rows int) { return s.cols, s.rows }

// Resize changes the grid size and clears it.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]Cell, s.cols*s.rows)
	s.Clear(s.background)
}

// Clear fills every cell with blanks on bg and drops the clip stack.
func (s *Surface) Clear(bg theme.Color) {
	s.background = bg
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' ', FG: theme.Black, BG: bg}
	}
	s.clips = s.clips[:0]
}

// Cell returns the cell at (x, y); outside the grid it returns a zero Cell.
func (s *Surface) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return Cell{}
	}
	return s.cells[y*s.cols+x]
}

func (s *Surface) clip() rect {
	r := rect{0, 0, s.cols, s.rows}
	if n := len(s.clips); n > 0 {
		r = r.intersect(s.clips[n-1])
	}
	return r
}

func toCells(b geom.Bounds) rect {
	return rect{
		x0: int(math32.Round(b.X)),
		y0: int(math32.Round(b.Y)),
		x1: int(math32.Round(b.Right())),
		y1: int(math32.Round(b.Bottom())),
	}
}

// blend composites src over dst.
func blend(src, dst theme.Color) theme.Color {
	sr, sg, sb, sa := src.Components()
	if sa == 0xFF {
		return src
	}
	dr, dg, db, _ := dst.Components()
	a := float32(sa) / 255
	mix := func(s, d uint8) uint8 {
		return uint8(math32.Round(float32(s)*a + float32(d)*(1-a)))
	}
	return theme.RGBA(mix(sr, dr), mix(sg, dg), mix(sb, db), 0xFF)
}

// ----------------------------------------------------------------------------
// render.Surface
// ----------------------------------------------------------------------------

// FillRect paints the background of every covered cell. Opaque fills also
// erase the characters underneath.
func (s *Surface) FillRect(b geom.Bounds, c theme.Color) {
	if c.Alpha() == 0 {
		return
	}
	r := toCells(b).intersect(s.clip())
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			cell := &s.cells[y*s.cols+x]
			cell.BG = blend(c, cell.BG)
			if c.Alpha() == 0xFF {
				cell.Rune = ' '
			}
		}
	}
}

// StrokeRect draws a box outline with line-drawing characters.
func (s *Surface) StrokeRect(b geom.Bounds, width float32, c theme.Color) {
	if width <= 0 || c.Alpha() == 0 {
		return
	}
	r := toCells(b)
	if r.x1-r.x0 < 2 || r.y1-r.y0 < 2 {
		return
	}
	clip := s.clip()
	set := func(x, y int, ch rune) {
		if clip.contains(x, y) {
			cell := &s.cells[y*s.cols+x]
			cell.Rune = ch
			cell.FG = blend(c, cell.BG)
		}
	}
	for x := r.x0 + 1; x < r.x1-1; x++ {
		set(x, r.y0, '─')
		set(x, r.y1-1, '─')
	}
	for y := r.y0 + 1; y < r.y1-1; y++ {
		set(r.x0, y, '│')
		set(r.x1-1, y, '│')
	}
	set(r.x0, r.y0, '┌')
	set(r.x1-1, r.y0, '┐')
	set(r.x0, r.y1-1, '└')
	set(r.x1-1, r.y1-1, '┘')
}

// DrawText writes a single line starting at the cell under at. Wide runes
// take two cells and are dropped when only half of them would be visible.
func (s *Surface) DrawText(text string, at geom.Vec2, _ font.Face, c theme.Color) {
	if c.Alpha() == 0 {
		return
	}
	clip := s.clip()
	x, y := int(math32.Round(at.X)), int(math32.Round(at.Y))
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if clip.contains(x, y) && clip.contains(x+w-1, y) {
			cell := &s.cells[y*s.cols+x]
			cell.Rune = ch
			cell.FG = blend(c, cell.BG)
			for i := 1; i < w; i++ {
				s.cells[y*s.cols+x+i].Rune = 0
			}
		}
		x += w
	}
}

// PushClip restricts drawing to b intersected with the current clip.
func (s *Surface) PushClip(b geom.Bounds) {
	s.clips = append(s.clips, toCells(b).intersect(s.clip()))
}

// PopClip restores the previous clip.
func (s *Surface) PopClip() {
	if n := len(s.clips); n > 0 {
		s.clips = s.clips[:n-1]
	}
}

// ----------------------------------------------------------------------------
// Output
// ----------------------------------------------------------------------------

// Row returns the characters of one row without styling.
func (s *Surface) Row(y int) string {
	if y < 0 || y >= s.rows {
		return ""
	}
	var sb strings.Builder
	for _, cell := range s.cells[y*s.cols : (y+1)*s.cols] {
		if cell.Rune != 0 {
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

// String returns every row without styling, separated by newlines.
func (s *Surface) String() string {
	rows := make([]string, s.rows)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Render returns the grid with terminal colors. Runs of cells sharing colors
// are styled together.
func (s *Surface) Render() string {
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < s.rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := s.cells[y*s.cols : (y+1)*s.cols]
		start := 0
		for start < len(row) {
			fg, bg := row[start].FG, row[start].BG
			run.Reset()
			end := start
			for end < len(row) && row[end].FG == fg && row[end].BG == bg {
				if row[end].Rune != 0 {
					run.WriteRune(row[end].Rune)
				}
				end++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fg.Hex())).
				Background(lipgloss.Color(bg.Hex()))
			sb.WriteString(style.Render(run.String()))
			start = end
		}
	}
	return sb.String()
}

// ----------------------------------------------------------------------------
// Theme
// ----------------------------------------------------------------------------

// Theme adapts the default theme to cells: no padding, and borders only on
// edit boxes, where they are drawn as box outlines.
func Theme() *theme.Theme {
	t := theme.Default().Clone()
	t.Name = "terminal"
	for name, st := range t.Styles {
		st.Padding = 0
		if name != "EditBox" {
			st.BorderWidth = 0
		}
	}
	return t
}
