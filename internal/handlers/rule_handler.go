package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/services"
)

// RuleHandler handles learned classification rules.
type RuleHandler struct {
	ruleService  services.RuleServicer
	auditService services.AuditServicer
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleService services.RuleServicer, auditService services.AuditServicer) *RuleHandler {
	return &RuleHandler{ruleService: ruleService, auditService: auditService}
}

// CreateRuleRequest represents the request payload for remembering a classification.
type CreateRuleRequest struct {
	Pattern     string `json:"pattern" binding:"required,max=500"`
	Category    string `json:"category" binding:"required,taxonomy_category"`
	Subcategory string `json:"subcategory" binding:"required,max=200"`
}

// ApplyRulesRequest represents the request payload for a bulk rule application.
type ApplyRulesRequest struct {
	BatchID           *string `json:"batch_id"`
	OnlyUncategorized *bool   `json:"only_uncategorized"`
	Month             string  `json:"month" binding:"omitempty,max=7"`
	MaxConfidence     *int    `json:"max_confidence" binding:"omitempty,min=1,max=100"`
}

// RuleEnvelope wraps a single rule.
type RuleEnvelope struct {
	Rule models.Rule `json:"rule"`
}

// RulesEnvelope wraps a rule list.
type RulesEnvelope struct {
	Rules []models.Rule `json:"rules"`
}

// CreateRule handles remembering a pattern's classification
// @Summary     Create or reinforce a rule
// @Description Store a classification for a pattern. The pattern is normalized; saving an existing pattern updates it and raises its confidence.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRuleRequest true "Rule details"
// @Success     201 {object} RuleEnvelope "Rule stored"
// @Failure     400 {object} ErrorResponse "Invalid pattern or classification"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.ruleService.CreateRule(req.Pattern, req.Category, req.Subcategory)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

// ListRules handles the retrieval of rules in matching order
// @Summary     List rules
// @Description List rules ordered by confidence and use, optionally for one category
// @Tags        rules
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Category key"
// @Success     200 {object} RulesEnvelope "Rules"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	rules, err := h.ruleService.ListRules(c.Query("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// ApplyRules handles a bulk rule application
// @Summary     Apply rules
// @Description Classify the selected transactions with the first matching rule. Manual classifications are never changed. only_uncategorized defaults to true.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ApplyRulesRequest false "Selection"
// @Success     200 {object} services.ApplyResult "Counts and per-classification stats"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Batch not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rules/apply [post]
func (h *RuleHandler) ApplyRules(c *gin.Context) {
	var req ApplyRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Omitted means only uncategorized rows.
	params := services.ApplyRulesParams{
		OnlyUncategorized: req.OnlyUncategorized == nil || *req.OnlyUncategorized,
		Month:             month,
		MaxConfidence:     req.MaxConfidence,
	}
	if req.BatchID != nil && *req.BatchID != "" {
		params.BatchID = req.BatchID
	}

	result, err := h.ruleService.ApplyRules(params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.Updated > 0 {
		h.auditService.Log(getSubject(c), "APPLY_RULES", "transaction", "", c.ClientIP(),
			map[string]interface{}{"batch_id": params.BatchID, "updated": result.Updated, "evaluated": result.Evaluated})
	}

	c.JSON(http.StatusOK, result)
}
