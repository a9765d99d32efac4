package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

// --- mock rule service ---

type mockRuleService struct {
	createRuleFn func(pattern, category, subcategory string) (*models.Rule, error)
	listRulesFn  func(category string) ([]models.Rule, error)
	applyRulesFn func(params services.ApplyRulesParams) (*services.ApplyResult, error)
}

func (m *mockRuleService) CreateRule(pattern, category, subcategory string) (*models.Rule, error) {
	if m.createRuleFn != nil {
		return m.createRuleFn(pattern, category, subcategory)
	}
	return &models.Rule{Pattern: pattern, Category: category, Subcategory: subcategory, Confidence: 50, TimesUsed: 1}, nil
}

func (m *mockRuleService) ListRules(category string) ([]models.Rule, error) {
	if m.listRulesFn != nil {
		return m.listRulesFn(category)
	}
	return []models.Rule{}, nil
}

func (m *mockRuleService) ApplyRules(params services.ApplyRulesParams) (*services.ApplyResult, error) {
	if m.applyRulesFn != nil {
		return m.applyRulesFn(params)
	}
	return &services.ApplyResult{Stats: []services.ApplyStat{}}, nil
}

var _ services.RuleServicer = (*mockRuleService)(nil)

func setupRuleRouter(handler *RuleHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectSubject("ana"))
	auth.POST("/rules", handler.CreateRule)
	auth.GET("/rules", handler.ListRules)
	auth.POST("/rules/apply", handler.ApplyRules)
	return r
}

func TestRuleHandler_CreateRule(t *testing.T) {
	t.Run("returns 201 with the stored rule", func(t *testing.T) {
		r := setupRuleRouter(NewRuleHandler(&mockRuleService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/rules",
			`{"pattern":"DEBIN FARMACIA SUR","category":"EGRESOS","subcategory":"Prestadores_Farmacias"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		rule := parseJSON(t, rec)["rule"].(map[string]interface{})
		if rule["pattern"] != "DEBIN FARMACIA SUR" || rule["confidence"].(float64) != 50 {
			t.Errorf("unexpected rule %v", rule)
		}
	})

	t.Run("returns 400 on missing subcategory", func(t *testing.T) {
		r := setupRuleRouter(NewRuleHandler(&mockRuleService{}, &mockAuditService{}))
		rec := doRequest(r, "POST", "/rules", `{"pattern":"X","category":"EGRESOS"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("maps invalid pattern", func(t *testing.T) {
		svc := &mockRuleService{
			createRuleFn: func(string, string, string) (*models.Rule, error) { return nil, apperrors.ErrInvalidPattern },
		}
		r := setupRuleRouter(NewRuleHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "POST", "/rules", `{"pattern":"###","category":"EGRESOS","subcategory":"Sueldos"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_PATTERN")
	})
}

func TestRuleHandler_ListRules(t *testing.T) {
	var gotCategory string
	svc := &mockRuleService{
		listRulesFn: func(category string) ([]models.Rule, error) {
			gotCategory = category
			return []models.Rule{{Pattern: "A"}, {Pattern: "B"}}, nil
		},
	}
	r := setupRuleRouter(NewRuleHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/rules?category=EGRESOS", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCategory != "EGRESOS" {
		t.Errorf("expected category filter EGRESOS, got %q", gotCategory)
	}
	if rules := parseJSON(t, rec)["rules"].([]interface{}); len(rules) != 2 {
		t.Errorf("expected 2 rules, got %d", len(rules))
	}
}

func TestRuleHandler_ApplyRules(t *testing.T) {
	t.Run("returns counts and audits updates", func(t *testing.T) {
		var got services.ApplyRulesParams
		svc := &mockRuleService{
			applyRulesFn: func(params services.ApplyRulesParams) (*services.ApplyResult, error) {
				got = params
				return &services.ApplyResult{Evaluated: 10, Updated: 4, Stats: []services.ApplyStat{{Category: "EGRESOS", Subcategory: "Sueldos", Count: 4}}}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupRuleRouter(NewRuleHandler(svc, audit))

		rec := doRequest(r, "POST", "/rules/apply", `{"batch_id":"B1","only_uncategorized":true,"month":"2024-03","max_confidence":60}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.BatchID == nil || *got.BatchID != "B1" || !got.OnlyUncategorized || got.Month == nil || *got.MaxConfidence != 60 {
			t.Errorf("unexpected params %+v", got)
		}
		result := parseJSON(t, rec)
		if result["updated_count"].(float64) != 4 || result["evaluated_count"].(float64) != 10 {
			t.Errorf("unexpected result %v", result)
		}
		if len(audit.entries) != 1 {
			t.Errorf("expected one audit entry, got %d", len(audit.entries))
		}
	})

	t.Run("zero updates is success without audit", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupRuleRouter(NewRuleHandler(&mockRuleService{}, audit))
		rec := doRequest(r, "POST", "/rules/apply", `{"only_uncategorized":true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(audit.entries) != 0 {
			t.Errorf("expected no audit entry, got %d", len(audit.entries))
		}
	})

	t.Run("empty batch id means all batches", func(t *testing.T) {
		var got services.ApplyRulesParams
		svc := &mockRuleService{
			applyRulesFn: func(params services.ApplyRulesParams) (*services.ApplyResult, error) {
				got = params
				return &services.ApplyResult{}, nil
			},
		}
		r := setupRuleRouter(NewRuleHandler(svc, &mockAuditService{}))
		doRequest(r, "POST", "/rules/apply", `{"batch_id":""}`)
		if got.BatchID != nil {
			t.Errorf("expected nil batch id, got %q", *got.BatchID)
		}
	})

	t.Run("only_uncategorized defaults to true", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			want bool
		}{
			{"omitted", `{"batch_id":"B1"}`, true},
			{"empty body", ``, true},
			{"explicit false", `{"only_uncategorized":false}`, false},
			{"explicit true", `{"only_uncategorized":true}`, true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var got services.ApplyRulesParams
				svc := &mockRuleService{
					applyRulesFn: func(params services.ApplyRulesParams) (*services.ApplyResult, error) {
						got = params
						return &services.ApplyResult{}, nil
					},
				}
				r := setupRuleRouter(NewRuleHandler(svc, &mockAuditService{}))
				rec := doRequest(r, "POST", "/rules/apply", tt.body)
				if rec.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
				}
				if got.OnlyUncategorized != tt.want {
					t.Errorf("expected only_uncategorized=%v, got %v", tt.want, got.OnlyUncategorized)
				}
			})
		}
	})

	t.Run("returns 400 on max_confidence out of range", func(t *testing.T) {
		r := setupRuleRouter(NewRuleHandler(&mockRuleService{}, &mockAuditService{}))
		rec := doRequest(r, "POST", "/rules/apply", `{"max_confidence":0}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown batch", func(t *testing.T) {
		svc := &mockRuleService{
			applyRulesFn: func(services.ApplyRulesParams) (*services.ApplyResult, error) { return nil, apperrors.ErrBatchNotFound },
		}
		r := setupRuleRouter(NewRuleHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "POST", "/rules/apply", `{"batch_id":"nope"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
