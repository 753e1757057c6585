package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kotashimizu/care-plan/internal/config"
	"github.com/kotashimizu/care-plan/internal/domain"
	"github.com/kotashimizu/care-plan/internal/export"
	"github.com/kotashimizu/care-plan/internal/llm"
	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/services"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, req llm.ChatRequest) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return llm.ExtractJSON(f.reply)
}

func newTestRouter(t *testing.T, fake *fakeLLM) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	cfg := config.OpenAIConfig{
		PlanModel:         "gpt-4o-mini",
		OptionsModel:      "gpt-4o-mini",
		QualityModel:      "gpt-4o",
		OptionsTimeoutSec: 45,
		PlanTimeoutSec:    35,
		QualityTimeoutSec: 20,
	}

	planSvc := services.NewPlanService(log, fake, cfg)
	qualitySvc := services.NewQualityService(log, fake, cfg)
	exporter := export.NewExporter(log, export.NewFontCache(""), config.ExportConfig{Scale: 2, MarginMM: 5})

	planHandler := NewPlanHandler(log, planSvc)
	qualityHandler := NewQualityHandler(log, qualitySvc)
	validateHandler := NewValidateHandler(log)
	exportHandler := NewExportHandler(log, exporter)

	router := gin.New()
	router.GET("/healthcheck", HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/generate-options", planHandler.GenerateOptions)
		api.POST("/generate-plan", planHandler.GeneratePlan)
		api.POST("/quality-check", qualityHandler.QualityCheck)
		api.POST("/validate-interview", validateHandler.ValidateInterview)
		api.POST("/export-pdf", exportHandler.ExportPDF)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func nineOptionsReply() string {
	var opts []map[string]string
	for _, cat := range []string{"A", "B", "C"} {
		for i := 0; i < 3; i++ {
			opts = append(opts, map[string]string{
				"category": cat,
				"title":    "支援項目",
				"content":  "具体的な支援内容。",
			})
		}
	}
	b, _ := json.Marshal(map[string]any{
		"userAndFamilyIntentions": "本人は通所の継続を希望している。",
		"comprehensiveSupport":    "段階的な支援を行う。",
		"supportPlanOptions":      opts,
	})
	return string(b)
}

func TestGenerateOptions_EmptyRecordIs400WithoutNetworkCall(t *testing.T) {
	fake := &fakeLLM{reply: nineOptionsReply()}
	router := newTestRouter(t, fake)

	w := doJSON(t, router, "/api/generate-options",
		`{"interviewRecord":"","serviceType":"employment-b","planDetailLevel":"basic"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if fake.calls != 0 {
		t.Fatalf("expected zero upstream calls, got %d", fake.calls)
	}
	if !strings.Contains(w.Body.String(), "必要な項目が不足しています") {
		t.Fatalf("expected missing-fields message: %s", w.Body.String())
	}
}

func TestGenerateOptions_NineOptionsThreePerCategory(t *testing.T) {
	fake := &fakeLLM{reply: nineOptionsReply()}
	router := newTestRouter(t, fake)

	w := doJSON(t, router, "/api/generate-options",
		`{"interviewRecord":"本人は就労継続を希望している。","serviceType":"employment-b","planDetailLevel":"basic"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Options                 []domain.SupportPlanOption `json:"options"`
		UserAndFamilyIntentions *string                    `json:"userAndFamilyIntentions"`
		ComprehensiveSupport    *string                    `json:"comprehensiveSupport"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Options) != 9 {
		t.Fatalf("expected 9 options, got %d", len(resp.Options))
	}
	counts := map[domain.OptionCategory]int{}
	for _, o := range resp.Options {
		counts[o.Category]++
	}
	if counts[domain.CategoryWork] != 3 || counts[domain.CategoryDailyLife] != 3 || counts[domain.CategorySocialLife] != 3 {
		t.Fatalf("expected 3 per category, got %v", counts)
	}
	if resp.UserAndFamilyIntentions == nil || resp.ComprehensiveSupport == nil {
		t.Fatalf("expected both summary strings non-null")
	}
}

func TestGenerateOptions_TimeoutIs504(t *testing.T) {
	fake := &fakeLLM{err: &llm.Error{Kind: llm.KindTimeout, Message: "リクエストがタイムアウトしました"}}
	router := newTestRouter(t, fake)

	w := doJSON(t, router, "/api/generate-options",
		`{"interviewRecord":"記録","serviceType":"employment-b","planDetailLevel":"basic"}`)

	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", w.Code)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if env.Error.Code != "timeout" || !strings.Contains(env.Error.Message, "タイムアウト") {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestGenerateOptions_UpstreamErrorIs500WithProviderText(t *testing.T) {
	fake := &fakeLLM{err: &llm.Error{Kind: llm.KindUpstream, Message: "AI API Error: Rate limit reached"}}
	router := newTestRouter(t, fake)

	w := doJSON(t, router, "/api/generate-options",
		`{"interviewRecord":"記録","serviceType":"employment-b","planDetailLevel":"basic"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Rate limit reached") {
		t.Fatalf("provider text missing: %s", w.Body.String())
	}
}

func TestGeneratePlan_Success(t *testing.T) {
	fake := &fakeLLM{reply: `{"userAndFamilyIntentions":"意向","comprehensiveSupport":"方針",
		"longTermGoal":"長期","shortTermGoal":"短期",
		"supportGoals":{"employment":{"itemName":"就労"},"dailyLife":{"itemName":"生活"},"socialLife":{"itemName":"社会"}}}`}
	router := newTestRouter(t, fake)

	w := doJSON(t, router, "/api/generate-plan",
		`{"interviewRecord":"本人は就労を希望している。","facilitySettings":{"facilityType":"employment-b"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Plan domain.IndividualSupportPlan `json:"plan"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Plan.SupportGoals.Employment.ItemName != "就労" {
		t.Fatalf("unexpected plan: %+v", resp.Plan)
	}
}

func TestQualityCheck_MissingPlanIs400(t *testing.T) {
	fake := &fakeLLM{reply: "{}"}
	router := newTestRouter(t, fake)

	w := doJSON(t, router, "/api/quality-check", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if fake.calls != 0 {
		t.Fatalf("expected zero upstream calls, got %d", fake.calls)
	}
}

func TestQualityCheck_Success(t *testing.T) {
	fake := &fakeLLM{reply: `{"score":{"expertise":85,"specificity":80,"feasibility":90,"consistency":85,"overall":85},"improvements":[],"suggestions":[]}`}
	router := newTestRouter(t, fake)

	w := doJSON(t, router, "/api/quality-check",
		`{"plan":{"userAndFamilyIntentions":"意向","comprehensiveSupport":"方針","longTermGoal":"長期","shortTermGoal":"短期"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result domain.QualityCheckResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Score.Overall != 85 {
		t.Fatalf("unexpected score: %+v", result.Score)
	}
}

func TestValidateInterview_MissingCategoriesReported(t *testing.T) {
	router := newTestRouter(t, &fakeLLM{})

	w := doJSON(t, router, "/api/validate-interview", `{"interviewRecord":"短い記録"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		IsValid  bool `json:"isValid"`
		Warnings []struct {
			Field    string `json:"field"`
			Severity string `json:"severity"`
		} `json:"warnings"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsValid {
		t.Fatalf("medium and low warnings must not invalidate")
	}
	if len(resp.Warnings) == 0 || resp.Summary == "" {
		t.Fatalf("expected warnings and summary, got %+v", resp)
	}
}

func TestExportPDF_ReturnsPDF(t *testing.T) {
	router := newTestRouter(t, &fakeLLM{})

	w := doJSON(t, router, "/api/export-pdf", `{
		"selectedOptions":[{"id":"A1","category":"A","title":"作業訓練","content":"手順を習得する。"}],
		"serviceType":"employment-b",
		"interviewRecord":"記録",
		"userInfo":{"userName":"山田太郎","createdYear":"2026","createdMonth":"8","createdDay":"31","serviceManagerName":"佐藤花子"}
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestExportPDF_UnknownServiceTypeIs400(t *testing.T) {
	router := newTestRouter(t, &fakeLLM{})

	w := doJSON(t, router, "/api/export-pdf", `{"selectedOptions":[],"serviceType":"unknown"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, &fakeLLM{})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("unexpected healthcheck response: %d %q", w.Code, w.Body.String())
	}
}
