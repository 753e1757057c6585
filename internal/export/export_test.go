package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kotashimizu/care-plan/internal/assembly"
	"github.com/kotashimizu/care-plan/internal/config"
	"github.com/kotashimizu/care-plan/internal/domain"
	"github.com/kotashimizu/care-plan/internal/logger"
)

func testDoc() *assembly.PlanDocument {
	return assembly.BuildPlanDocument(assembly.Request{
		SelectedOptions: []domain.SupportPlanOption{
			{ID: "A1", Category: domain.CategoryWork, Title: "作業訓練", Content: "軽作業の手順を習得する。週2回実施する。"},
			{ID: "B1", Category: domain.CategoryDailyLife, Title: "生活リズム", Content: "起床時間を安定させる。"},
		},
		ServiceType:     domain.ServiceEmploymentB,
		InterviewRecord: "本人は就労継続を希望している。",
		Metadata: assembly.Metadata{
			UserName:           "山田太郎",
			CreatedYear:        "2026",
			CreatedMonth:       "8",
			CreatedDay:         "31",
			ServiceManagerName: "佐藤花子",
		},
	})
}

func testExporter(t *testing.T, fontPath string) *Exporter {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewExporter(log, NewFontCache(fontPath), config.ExportConfig{Scale: 2, MarginMM: 5})
}

func TestToLatinEquivalent(t *testing.T) {
	got := ToLatinEquivalent("個別支援計画書")
	if !strings.Contains(got, "Kobetsu") || !strings.Contains(got, "Shien") {
		t.Fatalf("unexpected transliteration: %q", got)
	}
	if ContainsJapanese(got) {
		t.Fatalf("known terms must transliterate fully, got %q", got)
	}
}

func TestToLatinEquivalent_CompoundsBeforeParts(t *testing.T) {
	if got := ToLatinEquivalent("支援領域"); got != "Shien-Ryoiki" {
		t.Fatalf("compound term shadowed: %q", got)
	}
}

func TestContainsJapanese(t *testing.T) {
	if !ContainsJapanese("ひらがな") || !ContainsJapanese("カタカナ") || !ContainsJapanese("漢字") {
		t.Fatalf("Japanese scripts not detected")
	}
	if ContainsJapanese("plain ascii text") {
		t.Fatalf("false positive on ASCII")
	}
}

func TestFontCache_Disabled(t *testing.T) {
	fc := NewFontCache("  ")
	if fc.Enabled() {
		t.Fatalf("blank path must disable the cache")
	}
	if _, err := fc.Font(); err == nil {
		t.Fatalf("expected error from disabled cache")
	}
}

func TestFontCache_MissingFileErrorIsMemoized(t *testing.T) {
	fc := NewFontCache("/nonexistent/font.ttf")
	_, err1 := fc.Font()
	_, err2 := fc.Font()
	if err1 == nil || err2 == nil {
		t.Fatalf("expected load errors")
	}
	if err1.Error() != err2.Error() {
		t.Fatalf("error must be memoized: %v / %v", err1, err2)
	}
}

func TestExportVector_ProducesPDFWithoutFont(t *testing.T) {
	e := testExporter(t, "")

	out, err := e.ExportVector(testDoc(), Options{})
	if err != nil {
		t.Fatalf("vector export: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestExportVector_NilDocumentRejected(t *testing.T) {
	e := testExporter(t, "")
	if _, err := e.ExportVector(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func TestExportVector_PaginatesLongContent(t *testing.T) {
	e := testExporter(t, "")
	doc := testDoc()
	doc.Plan.ComprehensiveSupport = strings.Repeat("long running support policy text ", 200)
	doc.Plan.SupportGoals.Employment.SupportContent = strings.Repeat("detailed support content ", 150)

	out, err := e.ExportVector(doc, Options{})
	if err != nil {
		t.Fatalf("vector export: %v", err)
	}
	pages := pageCount(out)
	if pages < 2 {
		t.Fatalf("expected pagination, got %d page(s)", pages)
	}
}

func TestExportRaster_RequiresFont(t *testing.T) {
	e := testExporter(t, "")
	if _, err := e.ExportRaster(testDoc(), Options{}); err == nil {
		t.Fatalf("raster path must fail without a configured font")
	}
}

func TestExport_FallsBackToVector(t *testing.T) {
	e := testExporter(t, "")
	out, err := e.Export(testDoc(), Options{FitOnePage: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func pageCount(pdf []byte) int {
	s := string(pdf)
	return strings.Count(s, "/Type /Page") - strings.Count(s, "/Type /Pages")
}
