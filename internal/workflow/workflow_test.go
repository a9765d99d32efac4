package workflow

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/client"
	"finboard/internal/config"
	"finboard/internal/logger"
	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/router"
	"finboard/internal/taxonomy"
	"finboard/internal/testutil"
	"finboard/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// TestLearnThenAutoClassify classifies one row by hand, then imports a
// second statement whose matching rows are classified by the learned rule.
func TestLearnThenAutoClassify(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{JWTSecret: "workflow-test-secret", MaxUploadBytes: 1 << 20}
	config.Set(cfg)
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	server := httptest.NewServer(router.New(cfg, router.NewServices(db, taxonomy.Default, nil), taxonomy.Default))
	defer server.Close()

	token, err := middleware.GenerateAccessToken("ana", time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	api := client.New(client.Config{APIURL: server.URL + "/api/v1", Token: token, Timeout: 5 * time.Second}, nil)

	events := &recorder{}
	importer := NewImporter(api, WithNotifier(events))
	classifier := NewClassifier(api, WithNotifier(events))

	first, err := importer.Import(ctx, "febrero.csv", []byte("date,description,amount\n2024-02-10,DEBIN Farmacia Sur,-4500\n"))
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Apply.Err != nil || first.Apply.Result.Updated != 0 {
		t.Fatalf("expected no rules to apply yet, got %+v", first.Apply)
	}

	pending, err := classifier.Pending(ctx, first.Batch.ID)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected one pending row, got %v %v", pending, err)
	}

	s := NewSession(pending[0])
	s.Category = "EGRESOS"
	s.Subcategory = "Prestadores_Farmacias"
	s.Remember = true
	out, err := classifier.Submit(ctx, s)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Rule.State != RuleCommitted || out.Rule.Pattern != "DEBIN FARMACIA SUR" {
		t.Fatalf("expected committed rule, got %+v", out.Rule)
	}

	second, err := importer.Import(ctx, "marzo.csv", []byte(
		"date,description,amount\n"+
			"2024-03-02,DEBIN Farmacia Sur 77812,-3900\n"+
			"2024-03-05,Pago Mercado Pago,-1200\n"))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Apply.Err != nil || second.Apply.Result.Updated != 1 || second.Apply.Result.Evaluated != 2 {
		t.Fatalf("expected 1 of 2 classified, got %+v", second.Apply)
	}

	var auto models.Transaction
	db.Where("description = ?", "DEBIN Farmacia Sur 77812").First(&auto)
	if auto.ConfidenceSource != models.ConfidenceSourceLearnedRule || auto.Confidence != 95 {
		t.Errorf("expected learned_rule at 95, got %s at %d", auto.ConfidenceSource, auto.Confidence)
	}

	again, err := importer.ApplyToBatch(ctx, second.Batch.ID)
	if err != nil || again.Updated != 0 {
		t.Errorf("second pass should update nothing, got %+v %v", again, err)
	}

	for _, e := range events.events {
		if e.Level != LevelSuccess {
			t.Errorf("unexpected %s event: %s", e.Level, e.Message)
		}
	}
}

// TestClassifyByCategoryAlone commits a classification without a
// subcategory. Remembering it is skipped because a rule needs both keys.
func TestClassifyByCategoryAlone(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{JWTSecret: "workflow-test-secret", MaxUploadBytes: 1 << 20}
	config.Set(cfg)
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	server := httptest.NewServer(router.New(cfg, router.NewServices(db, taxonomy.Default, nil), taxonomy.Default))
	defer server.Close()

	token, err := middleware.GenerateAccessToken("ana", time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	api := client.New(client.Config{APIURL: server.URL + "/api/v1", Token: token, Timeout: 5 * time.Second}, nil)

	tx := testutil.CreateTestTransaction(t, db, "", "DEBIN Farmacia Sur", -4500)

	events := &recorder{}
	s := NewSession(*tx)
	s.Category = "EGRESOS"
	s.Remember = true

	out, err := NewClassifier(api, WithNotifier(events)).Submit(ctx, s)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.State() != StateCommitted || s.RuleState() != RuleSkipped {
		t.Errorf("unexpected states %s/%s", s.State(), s.RuleState())
	}
	if out.Transaction.Subcategory != nil {
		t.Errorf("expected no subcategory in response, got %q", *out.Transaction.Subcategory)
	}

	var stored models.Transaction
	if err := db.First(&stored, tx.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Category == nil || *stored.Category != "EGRESOS" || stored.Subcategory != nil {
		t.Errorf("unexpected stored classification %v/%v", stored.Category, stored.Subcategory)
	}
	if !stored.IsManual() {
		t.Error("expected manual source")
	}

	var rules int64
	db.Model(&models.Rule{}).Count(&rules)
	if rules != 0 {
		t.Errorf("expected no rule, got %d", rules)
	}
}
