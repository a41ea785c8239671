// Package render рисует календарную сетку месяца в PNG.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Константы размеров и отступов
const (
	ImageWidth      = 1400
	headerHeight    = 90
	weekdayHeight   = 40
	cellHeight      = 150
	cellPadding     = 8
	maxEventsInCell = 3
	daysInWeek      = 7
)

// Константы шрифтов
const (
	titleFontSize   = 34.0
	weekdayFontSize = 18.0
	dayFontSize     = 20.0
	eventFontSize   = 14.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 230}
	mutedTextColor = color.RGBA{150, 155, 160, 200}
	gridLineColor  = color.NRGBA{200, 200, 200, 255}
	cellColor      = color.NRGBA{255, 255, 255, 255}
	fillerColor    = color.NRGBA{232, 233, 236, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 90}
	selectedColor  = color.NRGBA{66, 133, 244, 255}
	eventBgColor   = color.RGBA{133, 193, 85, 200}
	eventTextColor = color.RGBA{20, 24, 28, 230}
)

var weekdayLabels = [daysInWeek]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

var (
	fontsMu     sync.Mutex
	cachedFonts = map[bool]*opentype.Font{}
)

type faceKey struct {
	size float64
	bold bool
}

// faceCache начертания одной отрисовки. opentype.Face не потокобезопасен,
// поэтому кэш живёт в пределах одного MonthImage.
type faceCache struct {
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[faceKey]font.Face)}
}

// face Go Regular/Bold нужного размера, при ошибке basicfont
func (fc *faceCache) face(size float64, bold bool) font.Face {
	key := faceKey{size: size, bold: bold}
	if f, ok := fc.faces[key]; ok {
		return f
	}

	var f font.Face = basicfont.Face7x13
	if parsed := parsedFont(bold); parsed != nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			f = face
		}
	}
	fc.faces[key] = f
	return f
}

func (fc *faceCache) use(dc *gg.Context, size float64, bold bool) {
	dc.SetFontFace(fc.face(size, bold))
}

// parsedFont разобранный TTF; разбирается один раз на процесс
func parsedFont(bold bool) *opentype.Font {
	fontsMu.Lock()
	defer fontsMu.Unlock()

	if parsed, ok := cachedFonts[bold]; ok {
		return parsed
	}
	data := goregular.TTF
	if bold {
		data = gobold.TTF
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		parsed = nil
	}
	cachedFonts[bold] = parsed
	return parsed
}

// ImageHeight высота картинки для сетки из weeks недель
func ImageHeight(weeks int) int {
	return headerHeight + weekdayHeight + weeks*cellHeight
}

// MonthImage рисует сетку: заголовок, строка дней недели, по строке на неделю
func MonthImage(grid calendar.Grid, title string) ([]byte, error) {
	weeks := grid.Weeks()
	if len(weeks) == 0 {
		return nil, fmt.Errorf("render month: empty grid")
	}

	dc := gg.NewContext(ImageWidth, ImageHeight(len(weeks)))
	fc := newFaceCache()
	dc.SetColor(bgColor)
	dc.Clear()

	cellWidth := float64(ImageWidth) / daysInWeek

	drawTitle(dc, fc, title)
	drawWeekdays(dc, fc, cellWidth)
	for row, week := range weeks {
		for col, cell := range week {
			x := float64(col) * cellWidth
			y := float64(headerHeight + weekdayHeight + row*cellHeight)
			drawCell(dc, fc, cell, x, y, cellWidth)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTitle(dc *gg.Context, fc *faceCache, title string) {
	fc.use(dc, titleFontSize, true)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, ImageWidth/2, headerHeight/2, 0.5, 0.5)
}

func drawWeekdays(dc *gg.Context, fc *faceCache, cellWidth float64) {
	fc.use(dc, weekdayFontSize, true)
	for i, label := range weekdayLabels {
		dc.SetColor(textColor)
		if i == 0 || i == daysInWeek-1 {
			dc.SetColor(mutedTextColor)
		}
		x := float64(i)*cellWidth + cellWidth/2
		dc.DrawStringAnchored(label, x, headerHeight+weekdayHeight/2, 0.5, 0.5)
	}
}

func drawCell(dc *gg.Context, fc *faceCache, cell calendar.DayCell, x, y, w float64) {
	h := float64(cellHeight)

	dc.SetColor(cellColor)
	if !cell.IsCurrentMonth {
		dc.SetColor(fillerColor)
	}
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	if cell.IsToday {
		dc.SetColor(todayBgColor)
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	}

	dc.SetColor(gridLineColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	if cell.IsSelected {
		dc.SetColor(selectedColor)
		dc.SetLineWidth(4)
		dc.DrawRectangle(x+2, y+2, w-4, h-4)
		dc.Stroke()
	}

	fc.use(dc, dayFontSize, cell.IsToday)
	dc.SetColor(textColor)
	if !cell.IsCurrentMonth {
		dc.SetColor(mutedTextColor)
	}
	dc.DrawStringAnchored(fmt.Sprint(cell.Date.Day), x+cellPadding, y+cellPadding, 0, 1)

	drawEvents(dc, fc, cell.Events, x, y+cellPadding+dayFontSize+6, w)
}

func drawEvents(dc *gg.Context, fc *faceCache, events []model.Event, x, y, w float64) {
	if len(events) == 0 {
		return
	}
	fc.use(dc, eventFontSize, false)

	lineHeight := eventFontSize + 10
	maxWidth := w - 2*cellPadding - 8

	for i, event := range EventLines(events) {
		top := y + float64(i)*lineHeight
		if i < maxEventsInCell {
			dc.SetColor(eventBgColor)
			dc.DrawRoundedRectangle(x+cellPadding, top, w-2*cellPadding, lineHeight-4, 4)
			dc.Fill()
			dc.SetColor(eventTextColor)
		} else {
			dc.SetColor(mutedTextColor)
		}
		dc.DrawStringAnchored(truncate(dc, event, maxWidth), x+cellPadding+4, top+(lineHeight-4)/2, 0, 0.35)
	}
}

// EventLines подписи событий ячейки: не больше трёх и "+N" за остальные
func EventLines(events []model.Event) []string {
	lines := make([]string, 0, maxEventsInCell+1)
	for i, event := range events {
		if i == maxEventsInCell {
			lines = append(lines, fmt.Sprintf("+%d", len(events)-maxEventsInCell))
			break
		}
		lines = append(lines, event.StartTime.Format("15:04")+" "+event.Title)
	}
	return lines
}

// truncate обрезает строку с многоточием по ширине
func truncate(dc *gg.Context, s string, maxWidth float64) string {
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return ""
}
