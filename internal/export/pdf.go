package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kotashimizu/care-plan/internal/assembly"
	"github.com/kotashimizu/care-plan/internal/config"
	"github.com/kotashimizu/care-plan/internal/logger"
)

// Options tune one export call. Zero values fall back to the configured
// defaults.
type Options struct {
	Scale      float64
	MarginMM   float64
	FitOnePage bool
	// Background is a hex page color for the raster surface, "#ffffff"
	// when empty.
	Background string
}

// Exporter turns an assembled plan document into PDF bytes. The raster
// path draws the form onto an offscreen surface and embeds the image; it
// needs a configured CJK font. The vector path draws native text and
// rules directly and works without one, degraded to transliteration.
type Exporter struct {
	log   *logger.Logger
	fonts *FontCache
	cfg   config.ExportConfig
}

func NewExporter(log *logger.Logger, fonts *FontCache, cfg config.ExportConfig) *Exporter {
	return &Exporter{
		log:   log.With("service", "Exporter"),
		fonts: fonts,
		cfg:   cfg,
	}
}

func (e *Exporter) options(opts Options) Options {
	if opts.Scale <= 0 {
		opts.Scale = e.cfg.Scale
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.MarginMM <= 0 {
		opts.MarginMM = e.cfg.MarginMM
	}
	if opts.MarginMM <= 0 {
		opts.MarginMM = 5
	}
	return opts
}

// Export prefers the raster path and falls back to the vector path when
// no CJK font is configured.
func (e *Exporter) Export(doc *assembly.PlanDocument, opts Options) ([]byte, error) {
	if e.fonts.Enabled() {
		out, err := e.ExportRaster(doc, opts)
		if err == nil {
			return out, nil
		}
		e.log.Warn("Raster export failed, falling back to vector path", "error", err)
	}
	return e.ExportVector(doc, opts)
}

// ExportRaster renders the document surface to PNG and embeds it into an
// A4 landscape PDF, slicing across pages when the image is taller than
// one page, or shrinking it to fit when FitOnePage is set.
func (e *Exporter) ExportRaster(doc *assembly.PlanDocument, opts Options) ([]byte, error) {
	opts = e.options(opts)

	surface, err := NewSurface(e.fonts, opts.Scale)
	if err == nil && opts.Background != "" {
		surface.SetBackground(opts.Background)
	}
	if err != nil {
		return nil, err
	}
	png, err := surface.RenderPNG(doc)
	if err != nil {
		return nil, err
	}
	pxW, pxH := surface.PixelSize()

	pdf := gofpdf.New("L", "mm", "A4", "")
	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("plan", imgOpts, bytes.NewReader(png))

	pageW, pageH := pdf.GetPageSize()
	margin := opts.MarginMM
	drawableW := pageW - 2*margin
	drawableH := pageH - 2*margin

	imgW := drawableW
	imgH := float64(pxH) * imgW / float64(pxW)

	if opts.FitOnePage {
		if imgH > drawableH {
			k := drawableH / imgH
			imgW *= k
			imgH *= k
		}
		pdf.AddPage()
		x := margin + (drawableW-imgW)/2
		y := margin + (drawableH-imgH)/2
		pdf.ImageOptions("plan", x, y, imgW, imgH, false, imgOpts, 0, "")
	} else {
		heightLeft := imgH
		pdf.AddPage()
		pdf.ImageOptions("plan", margin, margin, imgW, imgH, false, imgOpts, 0, "")
		heightLeft -= drawableH
		for heightLeft > 0 {
			pdf.AddPage()
			pos := margin - (imgH - heightLeft)
			pdf.ImageOptions("plan", margin, pos, imgW, imgH, false, imgOpts, 0, "")
			heightLeft -= drawableH
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write raster PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportVector draws the form as native text and table rules on A4
// portrait. With a configured TTF the text is real Japanese; without one
// it is transliterated domain terms over the built-in Helvetica.
func (e *Exporter) ExportVector(doc *assembly.PlanDocument, opts Options) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil plan document")
	}
	opts = e.options(opts)

	pdf := gofpdf.New("P", "mm", "A4", "")
	v := &vectorDoc{pdf: pdf, margin: 20, translit: true, family: "helvetica"}
	v.pageW, v.pageH = pdf.GetPageSize()

	if e.fonts.Enabled() {
		pdf.AddUTF8Font("plan", "", e.fonts.Path())
		pdf.AddUTF8Font("plan", "B", e.fonts.Path())
		if pdf.Err() {
			return nil, fmt.Errorf("failed to embed export font: %w", pdf.Error())
		}
		v.family = "plan"
		v.translit = false
	}

	pdf.AddPage()
	v.y = v.margin

	v.drawHeader(doc)
	v.drawBasicInfoTable(doc)
	v.drawGoalsTable(doc)
	v.drawSupportGoalsTable(doc)
	v.drawUserRoleTable(doc)
	v.drawFooter()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write vector PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// vectorDoc tracks the cursor and font state of one vector export.
type vectorDoc struct {
	pdf    *gofpdf.Fpdf
	margin float64
	pageW  float64
	pageH  float64
	y      float64

	family   string
	translit bool
}

func (v *vectorDoc) process(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if v.translit && ContainsJapanese(text) {
		return ToLatinEquivalent(text)
	}
	return text
}

func (v *vectorDoc) setFont(style string, size float64) {
	v.pdf.SetFont(v.family, style, size)
}

// ensureSpace paginates: when the next block would run past the bottom
// margin, start a new page and reset the cursor.
func (v *vectorDoc) ensureSpace(h float64) {
	if v.y+h > v.pageH-v.margin {
		v.pdf.AddPage()
		v.y = v.margin
	}
}

const lineFactor = 0.35 // pt to mm line advance, as the original layout used

func (v *vectorDoc) splitLines(text string, size float64, maxW float64) []string {
	v.setFont("", size)
	return v.pdf.SplitText(v.process(text), maxW)
}

func (v *vectorDoc) textHeight(text string, maxW, size float64) float64 {
	return float64(len(v.splitLines(text, size, maxW))) * size * lineFactor
}

// addText draws plain or wrapped text and returns the height consumed.
func (v *vectorDoc) addText(text string, x, y float64, size float64, style string, maxW float64) float64 {
	v.setFont(style, size)
	if maxW <= 0 {
		v.pdf.Text(x, y, v.process(text))
		return size * lineFactor
	}
	lines := v.pdf.SplitText(v.process(text), maxW)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v.pdf.Text(x, y+float64(i)*size*lineFactor, line)
	}
	return float64(len(lines)) * size * lineFactor
}

func (v *vectorDoc) addCenteredText(text string, y, size float64, style string) {
	v.setFont(style, size)
	t := v.process(text)
	w := v.pdf.GetStringWidth(t)
	v.pdf.Text(v.pageW/2-w/2, y, t)
}

func (v *vectorDoc) rect(x, y, w, h, lineWidth float64, fill bool) {
	v.pdf.SetLineWidth(lineWidth)
	style := "D"
	if fill {
		style = "FD"
	}
	v.pdf.Rect(x, y, w, h, style)
}

func (v *vectorDoc) drawHeader(doc *assembly.PlanDocument) {
	v.addCenteredText(doc.Title, v.y+10, 16, "B")

	titleY := v.y + 12
	v.pdf.SetLineWidth(1)
	v.pdf.Line(v.margin+40, titleY, v.pageW-v.margin-40, titleY)
	v.y += 20

	v.addCenteredText("サービス種別："+doc.ServiceTypeName, v.y, 12, "")
	v.y += 10

	v.addCenteredText(fmt.Sprintf("計画作成日：%s | 計画期間：6ヶ月", v.creationDate(doc)), v.y, 10, "")
	v.y += 15
}

func (v *vectorDoc) creationDate(doc *assembly.PlanDocument) string {
	m := doc.Metadata
	if m.CreatedYear != "" && m.CreatedMonth != "" && m.CreatedDay != "" {
		return fmt.Sprintf("%s年%s月%s日", m.CreatedYear, m.CreatedMonth, m.CreatedDay)
	}
	return time.Now().Format("2006/1/2")
}

func (v *vectorDoc) drawTwoColHeader(left, right string, labelFrac float64) {
	x := v.margin
	w := v.pageW - 2*v.margin
	headH := 12.0

	v.ensureSpace(headH)
	v.pdf.SetFillColor(240, 240, 240)
	v.rect(x, v.y, w, headH, 0.8, true)
	v.addText(left, x+2, v.y+8, 12, "B", 0)
	v.addText(right, x+w*labelFrac+2, v.y+8, 12, "B", 0)
	v.pdf.Line(x+w*labelFrac, v.y, x+w*labelFrac, v.y+headH)
	v.y += headH
}

func (v *vectorDoc) drawLabeledRow(label, body string, labelFrac, minH float64) {
	x := v.margin
	w := v.pageW - 2*v.margin
	bodyW := w*(1-labelFrac) - 4

	rowH := v.textHeight(body, bodyW, 11) + 8
	if rowH < minH {
		rowH = minH
	}
	v.ensureSpace(rowH)

	v.pdf.SetFillColor(248, 248, 248)
	v.rect(x, v.y, w*labelFrac, rowH, 0.3, true)
	v.rect(x, v.y, w, rowH, 0.3, false)

	v.addText(label, x+2, v.y+8, 11, "B", w*labelFrac-4)
	v.addText(body, x+w*labelFrac+2, v.y+8, 11, "", bodyW)
	v.pdf.Line(x+w*labelFrac, v.y, x+w*labelFrac, v.y+rowH)
	v.y += rowH
}

func (v *vectorDoc) drawBasicInfoTable(doc *assembly.PlanDocument) {
	v.drawTwoColHeader("項目", "内容", 0.25)
	v.drawLabeledRow("ご本人・ご家族の意向", doc.Plan.UserAndFamilyIntentions, 0.25, 20)
	v.drawLabeledRow("総合的な支援の方針", doc.Plan.ComprehensiveSupport, 0.25, 20)
	v.y += 10
}

func (v *vectorDoc) drawGoalsTable(doc *assembly.PlanDocument) {
	v.drawTwoColHeader("目標区分", "目標内容", 0.25)
	v.drawLabeledRow("長期目標（1年）", doc.Plan.LongTermGoal, 0.25, 25)
	v.drawLabeledRow("短期目標（3ヶ月）", doc.Plan.ShortTermGoal, 0.25, 25)
	v.y += 10
}

var vectorGoalColumns = []struct {
	title string
	frac  float64
}{
	{"支援領域", 0.15},
	{"支援目標", 0.25},
	{"支援内容", 0.30},
	{"達成時期", 0.10},
	{"担当者", 0.12},
	{"優先度", 0.08},
}

func (v *vectorDoc) drawSupportGoalsTable(doc *assembly.PlanDocument) {
	x := v.margin
	w := v.pageW - 2*v.margin
	headH := 15.0

	v.ensureSpace(headH)
	v.pdf.SetFillColor(240, 240, 240)
	v.rect(x, v.y, w, headH, 0.8, true)

	cx := x
	for i, col := range vectorGoalColumns {
		v.addText(col.title, cx+2, v.y+10, 10, "B", 0)
		if i < len(vectorGoalColumns)-1 {
			v.pdf.Line(cx+w*col.frac, v.y, cx+w*col.frac, v.y+headH)
		}
		cx += w * col.frac
	}
	v.y += headH

	goals := doc.Plan.SupportGoals
	for _, g := range []struct{ cells [6]string }{
		{[6]string{goals.Employment.ItemName, goals.Employment.Objective, goals.Employment.SupportContent, goals.Employment.AchievementPeriod, goals.Employment.Provider, goals.Employment.Priority}},
		{[6]string{goals.DailyLife.ItemName, goals.DailyLife.Objective, goals.DailyLife.SupportContent, goals.DailyLife.AchievementPeriod, goals.DailyLife.Provider, goals.DailyLife.Priority}},
		{[6]string{goals.SocialLife.ItemName, goals.SocialLife.Objective, goals.SocialLife.SupportContent, goals.SocialLife.AchievementPeriod, goals.SocialLife.Provider, goals.SocialLife.Priority}},
	} {
		v.drawSupportGoalRow(x, w, g.cells)
	}
	v.y += 10
}

func (v *vectorDoc) drawSupportGoalRow(x, w float64, cells [6]string) {
	rowH := 30.0
	if h := v.textHeight(cells[1], w*vectorGoalColumns[1].frac-4, 9) + 8; h > rowH {
		rowH = h
	}
	if h := v.textHeight(cells[2], w*vectorGoalColumns[2].frac-4, 9) + 8; h > rowH {
		rowH = h
	}
	v.ensureSpace(rowH)

	v.pdf.SetFillColor(248, 248, 248)
	v.rect(x, v.y, w*vectorGoalColumns[0].frac, rowH, 0.3, true)
	v.rect(x, v.y, w, rowH, 0.3, false)

	cx := x
	for i, cell := range cells {
		size := 9.0
		style := ""
		if i == 0 {
			size = 10
			style = "B"
		}
		v.addText(cell, cx+2, v.y+10, size, style, w*vectorGoalColumns[i].frac-4)
		if i < len(cells)-1 {
			v.pdf.Line(cx+w*vectorGoalColumns[i].frac, v.y, cx+w*vectorGoalColumns[i].frac, v.y+rowH)
		}
		cx += w * vectorGoalColumns[i].frac
	}
	v.y += rowH
}

func (v *vectorDoc) drawUserRoleTable(doc *assembly.PlanDocument) {
	v.drawTwoColHeader("支援領域", "留意事項（本人の役割を含む）", 0.25)

	goals := doc.Plan.SupportGoals
	for _, g := range []struct{ item, role string }{
		{goals.Employment.ItemName, goals.Employment.UserRole},
		{goals.DailyLife.ItemName, goals.DailyLife.UserRole},
		{goals.SocialLife.ItemName, goals.SocialLife.UserRole},
	} {
		v.drawLabeledRow(g.item, g.role, 0.25, 25)
	}
	v.y += 10
}

func (v *vectorDoc) drawFooter() {
	footerY := v.y + 10
	v.ensureSpace(25)

	v.pdf.SetLineWidth(0.3)
	v.pdf.Line(v.margin, footerY, v.pageW-v.margin, footerY)

	v.addCenteredText("※この個別支援計画書は定期的に見直し・更新を行います。", footerY+8, 9, "")
	v.addCenteredText("作成者：サービス管理責任者　　　　承認者：管理者", footerY+15, 9, "")
}
