// Package render draws a post image: background, username header with
// an underline rule, the auto-sized title with its highlight box, and
// the summary block, then persists the canvas.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/post-generator/internal/utils"
	"github.com/menta2k/post-generator/pkg/config"
	"github.com/menta2k/post-generator/pkg/fonts"
	"github.com/menta2k/post-generator/pkg/layout"
	"github.com/menta2k/post-generator/pkg/types"
)

var textColor = color.NRGBA{0, 0, 0, 255}

// Renderer composes post images from shaped text.
type Renderer struct {
	cfg     *config.Config
	title   *fonts.Family
	regular *fonts.Family
}

// New creates a renderer, loading both font families. Missing font
// files are replaced by the embedded Go fonts inside pkg/fonts.
func New(cfg *config.Config) *Renderer {
	return &Renderer{
		cfg:     cfg,
		title:   fonts.LoadTitle(cfg.Fonts.TitlePath),
		regular: fonts.LoadRegular(cfg.Fonts.RegularPath),
	}
}

// Render draws one post onto a fresh canvas and returns it.
func (r *Renderer) Render(text types.ShapedText) *image.NRGBA {
	cfg := r.cfg
	canvas := layout.CanvasSpec{
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		Margin: cfg.Canvas.Margin,
	}

	img := image.NewNRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	r.drawBackground(img)
	r.drawUsername(img, canvas)

	// Fit and wrap both text blocks.
	maxWidth := canvas.ContentWidth()
	titleSize, titleLines := layout.FitTitle(r.title, text.Headline, maxWidth, layout.FitOptions{
		BaseSize:  cfg.Layout.TitleBaseSize,
		MinSize:   cfg.Layout.TitleMinSize,
		WidthStep: cfg.Layout.TitleWidthStep,
		CountStep: cfg.Layout.TitleCountStep,
		MaxLines:  cfg.Layout.MaxTitleLines,
	})
	summaryLines := layout.Wrap(r.regular, cfg.Layout.SummaryFontSize, text.Summary, maxWidth)

	titleBlock := layout.NewBlock(titleLines, titleSize, cfg.Layout.TitleLineGap)
	summaryBlock := layout.NewBlock(summaryLines, cfg.Layout.SummaryFontSize, cfg.Layout.SummaryLineGap)

	placement := layout.Compose(titleBlock, summaryBlock, canvas, layout.ComposeOptions{
		TitleLineGap:   cfg.Layout.TitleLineGap,
		SummaryLineGap: cfg.Layout.SummaryLineGap,
		BlockGap:       cfg.Layout.BlockGap,
		FillThreshold:  cfg.Layout.FillThreshold,
		TopBias:        cfg.Layout.TopBias,
	})

	box, boxed := layout.LocateHighlight(r.title, titleSize, titleLines, placement.TitleYs,
		text.Highlight, canvas, cfg.Layout.HighlightPadX, cfg.Layout.HighlightPadY)

	titleFace := r.title.Face(titleSize)
	for i, ln := range titleLines {
		y := placement.TitleYs[i]
		if boxed && box.LineIndex == i {
			r.drawHighlightedLine(img, ln, y, box, text.Highlight, titleFace, titleSize, canvas)
		} else {
			drawString(img, ln.Text, canvas.Margin, y, textColor, titleFace)
		}
	}

	summaryFace := r.regular.Face(cfg.Layout.SummaryFontSize)
	for i, ln := range summaryLines {
		drawString(img, ln.Text, canvas.Margin, placement.SummaryYs[i], textColor, summaryFace)
	}

	return img
}

// RenderToFile renders one post and writes it under
// <dir>/<category>/post_<index>_<title>.<format>. The filename comes
// from the item's original title when present, not the possibly
// rewritten headline. A failure to create the directory or write the
// file is returned as an ItemError so a batch driver can keep going
// with the remaining items.
func (r *Renderer) RenderToFile(text types.ShapedText, category string, index int) (types.PostResult, error) {
	img := r.Render(text)

	outDir := filepath.Join(r.cfg.Output.Dir, utils.SanitizeCategory(category))
	if err := utils.EnsureDir(outDir); err != nil {
		return types.PostResult{}, &types.ItemError{
			Category: category,
			Index:    index,
			Err:      fmt.Errorf("failed to create output directory: %w", err),
		}
	}

	title := text.Title
	if title == "" {
		title = text.Headline
	}
	name := fmt.Sprintf("post_%d_%s.%s", index, utils.SanitizeTitle(title), r.cfg.Output.Format)
	outPath := filepath.Join(outDir, name)
	if err := r.save(img, outPath); err != nil {
		return types.PostResult{}, &types.ItemError{
			Category: category,
			Index:    index,
			Err:      fmt.Errorf("failed to save image: %w", err),
		}
	}

	return types.PostResult{
		OutputPath: outPath,
		Category:   category,
		Index:      index,
	}, nil
}

// save writes the image in the configured format.
func (r *Renderer) save(img image.Image, path string) error {
	switch strings.ToLower(r.cfg.Output.Format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: r.cfg.Output.Lossless, Quality: float32(r.cfg.Output.Quality)}
		return webp.Encode(f, img, opts)
	case "jpg", "jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(r.cfg.Output.Quality))
	default: // png
		return imaging.Save(img, path)
	}
}

// drawBackground fills the canvas with the configured background image,
// scaled to cover, or with the solid background color.
func (r *Renderer) drawBackground(img *image.NRGBA) {
	if src := r.cfg.Canvas.BackgroundImage; src != "" {
		if bg, err := imaging.Open(src); err == nil {
			bg = imaging.Fill(bg, img.Bounds().Dx(), img.Bounds().Dy(), imaging.Center, imaging.Lanczos)
			draw.Draw(img, img.Bounds(), bg, image.Point{}, draw.Src)
			return
		}
		// Fall through to the solid color; a decorative background is
		// not worth failing the item for.
	}
	bg := parseHexColor(r.cfg.Canvas.Background, color.NRGBA{243, 238, 215, 255})
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
}

// drawUsername draws the handle at the top of the canvas with a
// horizontal rule under it spanning the content width.
func (r *Renderer) drawUsername(img *image.NRGBA, canvas layout.CanvasSpec) {
	size := r.cfg.Layout.UsernameFontSize
	face := r.regular.Face(size)
	top := canvas.Margin * 2 / 3

	drawString(img, r.cfg.Output.Username, canvas.Margin, top, textColor, face)

	_, h := r.regular.Measure(r.cfg.Output.Username, size)
	ruleY := top + h + 18
	fillRect(img, image.Rect(canvas.Margin, ruleY, canvas.Width-canvas.Margin, ruleY+3), textColor)
}

// drawHighlightedLine splits a title line around the highlight phrase
// and paints the padded box between the leading text and the phrase, so
// the box sits behind the emphasized glyphs only.
func (r *Renderer) drawHighlightedLine(img *image.NRGBA, ln layout.Line, y int, box layout.HighlightBox, phrase string, face font.Face, size int, canvas layout.CanvasSpec) {
	idx := strings.Index(ln.Text, phrase)
	if idx < 0 {
		drawString(img, ln.Text, canvas.Margin, y, textColor, face)
		return
	}

	before := ln.Text[:idx]
	after := ln.Text[idx+len(phrase):]
	wBefore, _ := r.title.Measure(before, size)
	wMatch, _ := r.title.Measure(phrase, size)

	drawString(img, before, canvas.Margin, y, textColor, face)
	highlight := parseHexColor(r.cfg.Layout.HighlightColor, color.NRGBA{231, 255, 0, 255})
	fillRect(img, image.Rect(box.X0, box.Y0, box.X1, box.Y1), highlight)
	drawString(img, phrase, canvas.Margin+wBefore, y, textColor, face)
	drawString(img, after, canvas.Margin+wBefore+wMatch, y, textColor, face)
}

// drawString draws text with its top edge at y.
func drawString(img *image.NRGBA, text string, x, y int, col color.Color, face font.Face) {
	if text == "" {
		return
	}
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(text)
}

// fillRect fills a rectangle clipped to the image bounds.
func fillRect(img *image.NRGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// parseHexColor converts a #RRGGBB string, returning fallback when the
// string is malformed.
func parseHexColor(hex string, fallback color.NRGBA) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return fallback
	}

	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}

	return color.NRGBA{uint8(r), uint8(g), uint8(b), 255}
}
