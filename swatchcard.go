package paintmix

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Swatch card layout constants, in pixels.
const (
	cardWidth      = 640
	cardMargin     = 16
	cardRowHeight  = 72
	cardSwatchSize = 56
	cardChipSize   = 24
	cardFontSize   = 13
)

// RenderSwatchCard renders a PNG-ready image showing the target color
// next to each recipe's estimated mix, with per-component chips and
// proportion labels. fontPath must point to a TTF file; the card is
// meant for humans, so the text matters.
func RenderSwatchCard(target LAB, recipes []Recipe, fontPath string) (*image.RGBA, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return renderSwatchCard(target, recipes, ttf), nil
}

func renderSwatchCard(target LAB, recipes []Recipe, ttf *truetype.Font) *image.RGBA {
	height := cardMargin*2 + cardRowHeight*(len(recipes)+1)
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(cardFontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingFull)

	y := cardMargin
	fillSwatch(img, cardMargin, y, cardSwatchSize, LABToRGB(target))
	textX := cardMargin + cardSwatchSize + 12
	drawText(ctx, textX, y+18, "Target "+LABToRGB(target).Hex())
	drawText(ctx, textX, y+36, fmt.Sprintf("L %.1f  a %.1f  b %.1f", target.L, target.A, target.B))
	y += cardRowHeight

	for i, r := range recipes {
		fillSwatch(img, cardMargin, y, cardSwatchSize, LABToRGB(r.EstimatedLAB))
		drawText(ctx, textX, y+18,
			fmt.Sprintf("#%d  %s  %.1f%% match", i+1, r.EstimatedHex, r.MatchPercentage))

		chipX := textX
		for _, c := range r.Components {
			if c.Paint.HasColor() {
				fillSwatch(img, chipX, y+28, cardChipSize, LABToRGB(*c.Paint.LAB))
			}
			label := fmt.Sprintf("%s %.0f%%", c.Paint.Name, c.Proportion*100)
			drawText(ctx, chipX+cardChipSize+6, y+28+17, label)
			chipX += cardChipSize + 6 + 8*len(label)
		}
		y += cardRowHeight
	}
	return img
}

// fillSwatch draws a filled square with a thin gray border.
func fillSwatch(img *image.RGBA, x, y, size int, c RGB) {
	border := color.RGBA{R: 180, G: 180, B: 180, A: 255}
	fill := c.ToColor()
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			px := fill
			if dx == 0 || dy == 0 || dx == size-1 || dy == size-1 {
				px = border
			}
			img.SetRGBA(x+dx, y+dy, px)
		}
	}
}

func drawText(ctx *freetype.Context, x, y int, s string) {
	// Errors here mean a missing glyph; the card is still usable.
	_, _ = ctx.DrawString(s, freetype.Pt(x, y))
}
