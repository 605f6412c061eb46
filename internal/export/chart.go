package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/yildizm/TweetSense/internal/analysis"
)

const (
	DefaultChartWidth  = 800
	DefaultChartHeight = 520

	MinChartWidth  = 320
	MinChartHeight = 240

	margin          = 24
	lineHeight      = 13
	breakdownHeight = 110
)

var (
	colorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorText       = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	colorMuted      = color.RGBA{R: 107, G: 114, B: 128, A: 255}
	colorAxis       = color.RGBA{R: 209, G: 213, B: 219, A: 255}
	colorPositive   = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	colorNegative   = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	colorOther      = color.RGBA{R: 156, G: 163, B: 175, A: 255}
	colorNeutral    = color.RGBA{R: 59, G: 130, B: 246, A: 255}
)

type bar struct {
	label string
	count int
	color color.RGBA
}

// RenderChart draws the distribution bar, per-label bars and, when the
// report carries one, the VADER breakdown.
func RenderChart(report *analysis.Report, width, height int) (*image.RGBA, error) {
	if report == nil || len(report.Results) == 0 {
		return nil, &ChartError{Message: msgNoChart}
	}
	if width < MinChartWidth || height < MinChartHeight {
		return nil, &ChartError{Message: fmt.Sprintf("chart must be at least %dx%d, got %dx%d", MinChartWidth, MinChartHeight, width, height)}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), colorBackground)

	stats := report.Stats
	drawText(img, margin, margin+lineHeight, "Sentiment Distribution", colorText)
	summary := fmt.Sprintf("Total %d   Positive %d (%s)   Negative %d (%s)",
		stats.Total(),
		stats.Positive, analysis.FormatPercent(stats.PositivePercent()),
		stats.Negative, analysis.FormatPercent(stats.NegativePercent()))
	drawText(img, margin, margin+2*lineHeight+6, summary, colorMuted)

	top := margin + 3*lineHeight + 16
	drawDistribution(img, image.Rect(margin, top, width-margin, top+20), stats)

	bottom := height - margin
	if report.Breakdown != nil && height-breakdownHeight > top+120 {
		drawBreakdown(img, image.Rect(margin, height-margin-breakdownHeight, width-margin, height-margin), report.Breakdown)
		bottom = height - margin - breakdownHeight - 12
	}

	bars := []bar{
		{"Positive", stats.Positive, colorPositive},
		{"Negative", stats.Negative, colorNegative},
	}
	if stats.Other > 0 {
		bars = append(bars, bar{"Other", stats.Other, colorOther})
	}
	drawBars(img, image.Rect(margin, top+40, width-margin, bottom), bars)

	return img, nil
}

// drawDistribution draws a single stacked bar split by label share
func drawDistribution(img *image.RGBA, r image.Rectangle, stats analysis.Stats) {
	fillRect(img, r, colorAxis)

	total := stats.Total() + stats.Other
	if total == 0 {
		return
	}

	x := r.Min.X
	for _, part := range []bar{
		{count: stats.Positive, color: colorPositive},
		{count: stats.Negative, color: colorNegative},
		{count: stats.Other, color: colorOther},
	} {
		w := r.Dx() * part.count / total
		fillRect(img, image.Rect(x, r.Min.Y, x+w, r.Max.Y), part.color)
		x += w
	}
}

// drawBars draws one vertical bar per label, scaled to the largest count
func drawBars(img *image.RGBA, r image.Rectangle, bars []bar) {
	baseline := r.Max.Y - lineHeight - 6
	fillRect(img, image.Rect(r.Min.X, baseline, r.Max.X, baseline+1), colorAxis)

	maxCount := 0
	for _, b := range bars {
		if b.count > maxCount {
			maxCount = b.count
		}
	}

	slot := r.Dx() / len(bars)
	barWidth := slot / 2
	usable := baseline - r.Min.Y - lineHeight - 4

	for i, b := range bars {
		x := r.Min.X + i*slot + (slot-barWidth)/2

		h := 0
		if maxCount > 0 {
			h = usable * b.count / maxCount
		}
		fillRect(img, image.Rect(x, baseline-h, x+barWidth, baseline), b.color)

		count := fmt.Sprintf("%d", b.count)
		drawText(img, x+(barWidth-textWidth(count))/2, baseline-h-4, count, colorText)
		drawText(img, x+(barWidth-textWidth(b.label))/2, baseline+lineHeight+2, b.label, colorMuted)
	}
}

// drawBreakdown draws the averaged VADER sub-scores as horizontal bars
func drawBreakdown(img *image.RGBA, r image.Rectangle, b *analysis.Breakdown) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), colorAxis)
	drawText(img, r.Min.X, r.Min.Y+lineHeight+6, fmt.Sprintf("VADER breakdown   compound %.3f", b.AverageCompound), colorText)

	rows := []struct {
		label string
		value float64
		color color.RGBA
	}{
		{"pos", b.AveragePos, colorPositive},
		{"neu", b.AverageNeu, colorNeutral},
		{"neg", b.AverageNeg, colorNegative},
	}

	labelWidth := textWidth("neu 0.000") + 12
	trackWidth := r.Dx() - labelWidth
	y := r.Min.Y + 2*lineHeight + 14
	for _, row := range rows {
		drawText(img, r.Min.X, y+lineHeight-2, fmt.Sprintf("%s %.3f", row.label, row.value), colorMuted)

		track := image.Rect(r.Min.X+labelWidth, y, r.Min.X+labelWidth+trackWidth, y+lineHeight)
		fillRect(img, track, colorAxis)

		v := row.value
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		fillRect(img, image.Rect(track.Min.X, track.Min.Y, track.Min.X+int(float64(trackWidth)*v), track.Max.Y), row.color)

		y += lineHeight + 10
	}
}

func fillRect(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img draw.Image, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
