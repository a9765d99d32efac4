// Package client talks to the finboard HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
	"finboard/internal/taxonomy"
)

// TransactionUpdate lists the fields to change; nil fields are left alone.
type TransactionUpdate struct {
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Subcategory *string `json:"subcategory,omitempty"`
}

// RuleInput is the body of a rule creation.
type RuleInput struct {
	Pattern     string `json:"pattern"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// ApplyInput selects the transactions a bulk rule application looks at.
type ApplyInput struct {
	BatchID           string `json:"batch_id,omitempty"`
	OnlyUncategorized bool   `json:"only_uncategorized"`
	Month             string `json:"month,omitempty"`
	MaxConfidence     *int   `json:"max_confidence,omitempty"`
}

// ListFilter narrows a transaction listing. Zero values are not sent.
type ListFilter struct {
	BatchID       string
	Category      string
	Uncategorized bool
	Month         string
	Query         string
	Page          int
	PageSize      int
}

func (f ListFilter) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("batch_id", f.BatchID)
	set("category", f.Category)
	set("month", f.Month)
	set("q", f.Query)
	if f.Uncategorized {
		q.Set("uncategorized", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

// Taxonomy is the category catalogue served by the API.
type Taxonomy struct {
	Version    string              `json:"version"`
	Categories []taxonomy.Category `json:"categories"`
}

// Client is a thin JSON client. Every call is bounded by ctx.
type Client struct {
	baseURL     string
	token       string
	pipelineKey string
	http        *http.Client
}

// New creates a client for cfg. A nil httpClient uses one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:     cfg.APIURL,
		token:       cfg.Token,
		pipelineKey: cfg.PipelineKey,
		http:        httpClient,
	}
}

// GetTransaction fetches one transaction.
func (c *Client) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	var out struct {
		Transaction models.Transaction `json:"transaction"`
	}
	if err := c.doJSON(ctx, http.MethodGet, transactionPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Transaction, nil
}

// UpdateTransaction changes one transaction and returns it as stored.
func (c *Client) UpdateTransaction(ctx context.Context, id uint, fields TransactionUpdate) (*models.Transaction, error) {
	var out struct {
		Transaction models.Transaction `json:"transaction"`
	}
	if err := c.doJSON(ctx, http.MethodPut, transactionPath(id), fields, &out); err != nil {
		return nil, err
	}
	return &out.Transaction, nil
}

// DeleteTransaction removes one transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, transactionPath(id), nil, nil)
}

// ListTransactions returns one page of transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context, filter ListFilter) (*pagination.PageResponse[models.Transaction], error) {
	path := "/transactions"
	if q := filter.values().Encode(); q != "" {
		path += "?" + q
	}
	var out pagination.PageResponse[models.Transaction]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRule stores or reinforces a rule.
func (c *Client) CreateRule(ctx context.Context, in RuleInput) (*models.Rule, error) {
	var out struct {
		Rule models.Rule `json:"rule"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/rules", in, &out); err != nil {
		return nil, err
	}
	return &out.Rule, nil
}

// ListRules returns the rules in matching order, optionally for one category.
func (c *Client) ListRules(ctx context.Context, category string) ([]models.Rule, error) {
	path := "/rules"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var out struct {
		Rules []models.Rule `json:"rules"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Rules, nil
}

// ApplyRules runs the bulk rule application on the server.
func (c *Client) ApplyRules(ctx context.Context, in ApplyInput) (*services.ApplyResult, error) {
	var out services.ApplyResult
	if err := c.doJSON(ctx, http.MethodPost, "/rules/apply", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportBatch uploads a statement file. With a pipeline key configured the
// upload goes through the pipeline route instead of the bearer-token one.
func (c *Client) ImportBatch(ctx context.Context, filename string, content []byte) (*models.ImportBatch, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	path := "/batches"
	if c.pipelineKey != "" {
		path = "/pipeline/batches"
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out struct {
		Batch models.ImportBatch `json:"batch"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Batch, nil
}

// ListBatches returns the import batches, newest first.
func (c *Client) ListBatches(ctx context.Context) ([]models.ImportBatch, error) {
	var out struct {
		Batches []models.ImportBatch `json:"batches"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/batches", nil, &out); err != nil {
		return nil, err
	}
	return out.Batches, nil
}

// Taxonomy fetches the category catalogue.
func (c *Client) Taxonomy(ctx context.Context) (*Taxonomy, error) {
	var out Taxonomy
	if err := c.doJSON(ctx, http.MethodGet, "/taxonomy", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func transactionPath(id uint) string {
	return "/transactions/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.pipelineKey != "" {
		req.Header.Set("X-API-Key", c.pipelineKey)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
