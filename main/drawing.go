package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/undeconstructed/gomonopoly/game"
)

const cellSize = 80

type circle struct {
	p image.Point
	r int
}

func (c *circle) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.r, c.p.Y-c.r, c.p.X+c.r, c.p.Y+c.r)
}

func (c *circle) At(x, y int) color.Color {
	xx, yy, rr := float64(x-c.p.X)+0.5, float64(y-c.p.Y)+0.5, float64(c.r)
	if xx*xx+yy*yy < rr*rr {
		return color.Alpha{255}
	}
	return color.Alpha{0}
}

var kindColours = map[game.Kind]color.NRGBA{
	game.KindStandard: {235, 235, 220, 255},
	game.KindTransit:  {190, 190, 190, 255},
	game.KindUtility:  {200, 225, 255, 255},
	game.KindStart:    {200, 255, 200, 255},
	game.KindFreeRest: {255, 245, 190, 255},
	game.KindGoToJail: {255, 200, 200, 255},
	game.KindJail:     {255, 160, 160, 255},
}

var playerColours = []color.NRGBA{
	{220, 30, 30, 255},
	{30, 60, 220, 255},
	{20, 160, 60, 255},
	{240, 140, 0, 255},
	{140, 40, 180, 255},
	{0, 160, 170, 255},
}

// cellAt is the top left of a space's cell. Spaces go round the edge
// clockwise, starting from the bottom right corner.
func cellAt(pos, size int) image.Point {
	k := (size + 3) / 4
	side, off := pos/k, pos%k
	switch side {
	case 0:
		return image.Pt((k-off)*cellSize, k*cellSize)
	case 1:
		return image.Pt(0, (k-off)*cellSize)
	case 2:
		return image.Pt(off*cellSize, 0)
	default:
		return image.Pt(k*cellSize, off*cellSize)
	}
}

// renderBoard draws spaces coloured by kind, a dot in the corner of owned
// spaces in the owner's colour, and the players as counters.
func renderBoard(g *game.Game) *image.NRGBA {
	b := g.Board()
	k := (b.Size() + 3) / 4
	img := image.NewNRGBA(image.Rect(0, 0, (k+1)*cellSize, (k+1)*cellSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	drawCircle := func(p image.Point, r int, c color.Color) {
		draw.DrawMask(img, img.Bounds(), &image.Uniform{c}, image.Point{}, &circle{p, r}, image.Point{}, draw.Over)
	}

	colourOf := map[string]color.NRGBA{}
	for i, p := range g.Players() {
		colourOf[p.Name] = playerColours[i%len(playerColours)]
	}

	for _, s := range b.Spaces() {
		tl := cellAt(s.Position, b.Size())
		cell := image.Rect(tl.X, tl.Y, tl.X+cellSize, tl.Y+cellSize)
		draw.Draw(img, cell, &image.Uniform{color.Black}, image.Point{}, draw.Src)
		draw.Draw(img, cell.Inset(2), &image.Uniform{kindColours[s.Kind]}, image.Point{}, draw.Src)

		if s.Owned() {
			drawCircle(tl.Add(image.Pt(12, 12)), 7, color.Black)
			drawCircle(tl.Add(image.Pt(12, 12)), 5, colourOf[s.Owner])
		}
	}

	count := map[int]int{}
	for _, p := range g.Players() {
		n := count[p.Position]
		count[p.Position]++

		tl := cellAt(p.Position, b.Size())
		centre := tl.Add(image.Pt(cellSize/2+(n%3-1)*20, cellSize/2+(n/3)*20))
		ring := color.Color(color.Black)
		if p.Jailed {
			ring = color.NRGBA{90, 90, 90, 255}
		}
		drawCircle(centre, 9, ring)
		drawCircle(centre, 7, colourOf[p.Name])
	}

	return img
}

func drawBoard(g *game.Game, file string) error {
	img := renderBoard(g)

	out, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
