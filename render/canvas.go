// Package render draws simulation snapshots onto a tcell screen
package render

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/width"
)

// RuneWidth returns the terminal cell width of r
// East Asian wide and fullwidth runes (Hangul, CJK, fullwidth digits) take two cells
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// StringWidth returns the cell width of s
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

var (
	colorMu    sync.Mutex
	colorCache = make(map[string]tcell.Color)
)

// ParseColor maps "#rgb", "#rrggbb" or a tcell color name onto a color
// Unknown input yields tcell.ColorDefault
func ParseColor(s string) tcell.Color {
	colorMu.Lock()
	defer colorMu.Unlock()
	if c, ok := colorCache[s]; ok {
		return c
	}

	c := tcell.ColorDefault
	hex := strings.TrimPrefix(s, "#")
	switch {
	case len(s) == 4 && s[0] == '#':
		if v, err := strconv.ParseUint(hex, 16, 16); err == nil {
			r, g, b := int32(v>>8&0xf), int32(v>>4&0xf), int32(v&0xf)
			c = tcell.NewRGBColor(r*17, g*17, b*17)
		}
	case len(s) == 7 && s[0] == '#':
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			c = tcell.NewHexColor(int32(v))
		}
	case s != "":
		c = tcell.GetColor(s)
	}
	colorCache[s] = c
	return c
}

// canvas bounds drawing to the screen and maps world coordinates to cells
type canvas struct {
	screen        tcell.Screen
	width, height int

	// Playfield rectangle in cells, starting at column 0
	fieldY, fieldW, fieldH int

	// World size of the snapshot being drawn
	worldW, worldH float64
}

// cell maps a world position to a playfield cell; ok is false outside the field
func (c *canvas) cell(x, y float64) (cx, cy int, ok bool) {
	if c.worldW <= 0 || c.worldH <= 0 {
		return 0, 0, false
	}
	cx = int(x / c.worldW * float64(c.fieldW))
	cy = int(y / c.worldH * float64(c.fieldH))
	if x < 0 || y < 0 || cx >= c.fieldW || cy >= c.fieldH {
		return 0, 0, false
	}
	return cx, c.fieldY + cy, true
}

// put sets one cell if it is on screen
func (c *canvas) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// text draws s from (x, y) and returns the column after it
// Wide runes that would straddle the right edge are dropped
func (c *canvas) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := RuneWidth(r)
		if x+w > c.width {
			return x
		}
		c.put(x, y, r, style)
		x += w
	}
	return x
}

// centered draws s centered on column cx
func (c *canvas) centered(cx, y int, s string, style tcell.Style) int {
	return c.text(cx-StringWidth(s)/2, y, s, style)
}

// line draws a Bresenham line between two cells
func (c *canvas) line(x0, y0, x1, y1 int, r rune, style tcell.Style) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.put(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// fill paints a rectangle with spaces
func (c *canvas) fill(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.put(col, row, ' ', style)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
