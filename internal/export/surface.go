package export

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/kotashimizu/care-plan/internal/assembly"
)

// A4 landscape in millimeters.
const (
	pageWidthMM  = 297.0
	pageHeightMM = 210.0
	mmToPx       = 96.0 / 25.4
)

// Surface is the offscreen document canvas the raster export path draws
// the 個別支援計画書 form onto. It requires a configured CJK font; callers
// without one use the vector fallback instead.
type Surface struct {
	dc         *gg.Context
	scale      float64
	background string

	marginX float64
	y       float64

	faceSmall  font.Face
	faceBody   font.Face
	faceLabel  font.Face
	faceHeader font.Face
	faceTitle  font.Face
}

func NewSurface(fonts *FontCache, scale float64) (*Surface, error) {
	if scale <= 0 {
		scale = 2
	}
	s := &Surface{scale: scale}

	var err error
	if s.faceSmall, err = fonts.Face(9 * scale); err != nil {
		return nil, err
	}
	if s.faceBody, err = fonts.Face(10 * scale); err != nil {
		return nil, err
	}
	if s.faceLabel, err = fonts.Face(11 * scale); err != nil {
		return nil, err
	}
	if s.faceHeader, err = fonts.Face(12 * scale); err != nil {
		return nil, err
	}
	if s.faceTitle, err = fonts.Face(16 * scale); err != nil {
		return nil, err
	}

	w := int(pageWidthMM * mmToPx * scale)
	h := int(pageHeightMM * mmToPx * scale)
	s.dc = gg.NewContext(w, h)
	s.marginX = s.mm(15)
	return s, nil
}

// SetBackground overrides the white page fill with a hex color.
func (s *Surface) SetBackground(hex string) { s.background = hex }

func (s *Surface) mm(v float64) float64 { return v * mmToPx * s.scale }

func (s *Surface) width() float64 { return float64(s.dc.Width()) }

// PixelSize is the rendered canvas size, used by the raster page slicer.
func (s *Surface) PixelSize() (w, h int) {
	return s.dc.Width(), s.dc.Height()
}

// Render draws the whole form. The cursor runs top to bottom; the raster
// page slicer deals with overflow, not the surface.
func (s *Surface) Render(doc *assembly.PlanDocument) error {
	if doc == nil {
		return fmt.Errorf("nil plan document")
	}
	if s.background != "" {
		s.dc.SetHexColor(s.background)
	} else {
		s.dc.SetRGB(1, 1, 1)
	}
	s.dc.Clear()
	s.dc.SetRGB(0, 0, 0)
	s.y = s.mm(10)

	s.drawHeader(doc)
	s.drawBasicInfoTable(doc)
	s.drawGoalsTable(doc)
	s.drawSupportGoalsTable(doc)
	s.drawSignature(doc)
	return nil
}

func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

func (s *Surface) RenderPNG(doc *assembly.PlanDocument) ([]byte, error) {
	if err := s.Render(doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode surface PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// wrap breaks text rune by rune against the face's measured width. CJK
// text has no word boundaries, so breaking anywhere is correct here.
func (s *Surface) wrap(face font.Face, text string, maxW float64) []string {
	s.dc.SetFontFace(face)
	var lines []string
	var cur []rune
	for _, r := range text {
		if r == '\n' {
			lines = append(lines, string(cur))
			cur = nil
			continue
		}
		cand := string(append(cur, r))
		if w, _ := s.dc.MeasureString(cand); w > maxW && len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = []rune{r}
			continue
		}
		cur = append(cur, r)
	}
	return append(lines, string(cur))
}

func (s *Surface) lineHeight(size float64) float64 {
	return size * s.scale * 1.35
}

func (s *Surface) drawTextLines(face font.Face, lines []string, x, top, lineH float64) {
	s.dc.SetFontFace(face)
	for i, line := range lines {
		s.dc.DrawString(line, x, top+float64(i)*lineH+lineH*0.75)
	}
}

func (s *Surface) drawText(face font.Face, text string, x, top, lineH float64) {
	s.drawTextLines(face, []string{text}, x, top, lineH)
}

func (s *Surface) drawCenteredText(face font.Face, text string, cx, top, lineH float64) {
	s.dc.SetFontFace(face)
	w, _ := s.dc.MeasureString(text)
	s.dc.DrawString(text, cx-w/2, top+lineH*0.75)
}

func (s *Surface) strokeRect(x, y, w, h, lineWidth float64) {
	s.dc.SetLineWidth(lineWidth * s.scale)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Stroke()
}

func (s *Surface) fillRect(x, y, w, h float64, gray float64) {
	s.dc.SetRGB(gray, gray, gray)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
	s.dc.SetRGB(0, 0, 0)
}

func (s *Surface) vline(x, y1, y2 float64) {
	s.dc.SetLineWidth(1 * s.scale)
	s.dc.DrawLine(x, y1, x, y2)
	s.dc.Stroke()
}

func (s *Surface) drawHeader(doc *assembly.PlanDocument) {
	lineH := s.lineHeight(11)

	name := doc.Metadata.UserName
	if name == "" {
		name = "　"
	}
	s.drawText(s.faceLabel, "利用者氏名："+name, s.marginX, s.y, lineH)

	date := fmt.Sprintf("作成年月日：%s年%s月%s日",
		blankIfEmpty(doc.Metadata.CreatedYear),
		blankIfEmpty(doc.Metadata.CreatedMonth),
		blankIfEmpty(doc.Metadata.CreatedDay))
	s.dc.SetFontFace(s.faceLabel)
	dw, _ := s.dc.MeasureString(date)
	s.drawText(s.faceLabel, date, s.width()-s.marginX-dw, s.y, lineH)
	s.y += lineH + s.mm(3)

	titleH := s.lineHeight(16)
	s.drawCenteredText(s.faceTitle, doc.Title, s.width()/2, s.y, titleH)
	s.y += titleH

	s.drawCenteredText(s.faceHeader, "サービス種別："+doc.ServiceTypeName, s.width()/2, s.y, s.lineHeight(12))
	s.y += s.lineHeight(12) + s.mm(5)
}

func blankIfEmpty(v string) string {
	if v == "" {
		return "　　"
	}
	return v
}

// labeled two-column row: shaded label cell on the left, wrapped body on
// the right. Returns the row height it consumed.
func (s *Surface) drawLabeledRow(x, w, labelW float64, label, body string, minH float64) float64 {
	pad := s.mm(2)
	lineH := s.lineHeight(10)
	lines := s.wrap(s.faceBody, body, w-labelW-2*pad)
	rowH := float64(len(lines))*lineH + 2*pad
	if rowH < minH {
		rowH = minH
	}

	s.fillRect(x, s.y, labelW, rowH, 0.97)
	s.strokeRect(x, s.y, w, rowH, 1)
	s.vline(x+labelW, s.y, s.y+rowH)

	s.drawText(s.faceLabel, label, x+pad, s.y+pad, s.lineHeight(11))
	s.drawTextLines(s.faceBody, lines, x+labelW+pad, s.y+pad, lineH)
	return rowH
}

func (s *Surface) drawTwoColHeader(x, w, labelW float64, left, right string) float64 {
	pad := s.mm(2)
	headH := s.lineHeight(12) + 2*pad
	s.fillRect(x, s.y, w, headH, 0.94)
	s.strokeRect(x, s.y, w, headH, 2)
	s.vline(x+labelW, s.y, s.y+headH)
	s.drawCenteredText(s.faceHeader, left, x+labelW/2, s.y+pad, s.lineHeight(12))
	s.drawCenteredText(s.faceHeader, right, x+labelW+(w-labelW)/2, s.y+pad, s.lineHeight(12))
	return headH
}

func (s *Surface) drawBasicInfoTable(doc *assembly.PlanDocument) {
	x := s.marginX
	w := s.width() - 2*s.marginX
	labelW := w * 0.25

	s.y += s.drawTwoColHeader(x, w, labelW, "項目", "内容")
	s.y += s.drawLabeledRow(x, w, labelW, "ご本人・ご家族の意向", doc.Plan.UserAndFamilyIntentions, s.mm(12))
	s.y += s.drawLabeledRow(x, w, labelW, "総合的な支援の方針", doc.Plan.ComprehensiveSupport, s.mm(12))
	s.y += s.mm(5)
}

func (s *Surface) drawGoalsTable(doc *assembly.PlanDocument) {
	x := s.marginX
	w := s.width() - 2*s.marginX
	labelW := w * 0.25

	s.y += s.drawTwoColHeader(x, w, labelW, "目標区分", "目標内容")
	s.y += s.drawLabeledRow(x, w, labelW, "長期目標（1年）", doc.Plan.LongTermGoal, s.mm(10))
	s.y += s.drawLabeledRow(x, w, labelW, "短期目標（3ヶ月）", doc.Plan.ShortTermGoal, s.mm(10))
	s.y += s.mm(5)
}

var supportGoalColumns = []struct {
	title string
	frac  float64
}{
	{"支援領域", 0.10},
	{"支援目標", 0.20},
	{"支援内容", 0.30},
	{"達成時期", 0.08},
	{"担当者", 0.10},
	{"優先度", 0.07},
	{"留意事項（本人の役割を含む）", 0.15},
}

func (s *Surface) drawSupportGoalsTable(doc *assembly.PlanDocument) {
	x := s.marginX
	w := s.width() - 2*s.marginX
	pad := s.mm(1.5)

	headH := s.lineHeight(10) + 2*pad
	s.fillRect(x, s.y, w, headH, 0.94)
	s.strokeRect(x, s.y, w, headH, 2)
	cx := x
	for i, col := range supportGoalColumns {
		colW := w * col.frac
		s.drawCenteredText(s.faceBody, col.title, cx+colW/2, s.y+pad, s.lineHeight(10))
		if i < len(supportGoalColumns)-1 {
			s.vline(cx+colW, s.y, s.y+headH)
		}
		cx += colW
	}
	s.y += headH

	goals := doc.Plan.SupportGoals
	for _, g := range []struct {
		cells [7]string
	}{
		{[7]string{goals.Employment.ItemName, goals.Employment.Objective, goals.Employment.SupportContent, goals.Employment.AchievementPeriod, goals.Employment.Provider, goals.Employment.Priority, goals.Employment.UserRole}},
		{[7]string{goals.DailyLife.ItemName, goals.DailyLife.Objective, goals.DailyLife.SupportContent, goals.DailyLife.AchievementPeriod, goals.DailyLife.Provider, goals.DailyLife.Priority, goals.DailyLife.UserRole}},
		{[7]string{goals.SocialLife.ItemName, goals.SocialLife.Objective, goals.SocialLife.SupportContent, goals.SocialLife.AchievementPeriod, goals.SocialLife.Provider, goals.SocialLife.Priority, goals.SocialLife.UserRole}},
	} {
		s.drawSupportGoalRow(x, w, pad, g.cells)
	}
	s.y += s.mm(5)
}

func (s *Surface) drawSupportGoalRow(x, w, pad float64, cells [7]string) {
	lineH := s.lineHeight(9)

	wrapped := make([][]string, len(cells))
	rowH := s.mm(10)
	cx := x
	for i, cell := range cells {
		colW := w * supportGoalColumns[i].frac
		wrapped[i] = s.wrap(s.faceSmall, cell, colW-2*pad)
		if h := float64(len(wrapped[i]))*lineH + 2*pad; h > rowH {
			rowH = h
		}
		cx += colW
	}

	s.fillRect(x, s.y, w*supportGoalColumns[0].frac, rowH, 0.97)
	s.strokeRect(x, s.y, w, rowH, 1)

	cx = x
	for i := range cells {
		colW := w * supportGoalColumns[i].frac
		s.drawTextLines(s.faceSmall, wrapped[i], cx+pad, s.y+pad, lineH)
		if i < len(cells)-1 {
			s.vline(cx+colW, s.y, s.y+rowH)
		}
		cx += colW
	}
	s.y += rowH
}

func (s *Surface) drawSignature(doc *assembly.PlanDocument) {
	s.y += s.mm(8)
	lineH := s.lineHeight(11)
	half := (s.width() - 2*s.marginX) / 2

	s.drawText(s.faceLabel, "提供するサービス内容について、本計画書に基づき説明しました。", s.marginX, s.y, lineH)
	s.drawText(s.faceLabel, "本計画書に基づきサービスの提供を受け、内容に同意しました。", s.marginX+half, s.y, lineH)
	s.y += lineH + s.mm(8)

	manager := doc.Metadata.ServiceManagerName
	if manager == "" {
		manager = "　"
	}
	s.drawText(s.faceLabel, "サービス管理責任者氏名："+manager, s.marginX, s.y, lineH)
	s.drawText(s.faceLabel, "年　　月　　日（利用者署名）", s.marginX+half, s.y, lineH)
	s.y += lineH
}
