// Package services holds clients for external collaborators. The insight
// service wraps the hosted OCR / LLM platform used for receipt extraction,
// PDF-to-lesson conversion and budget advice. Failures here are remote
// errors: callers surface them without retrying.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"walletxp/backend/config"
)

var ErrInsightUnavailable = errors.New("insight service not configured")

// ReceiptData is the structured output of a scanned receipt.
type ReceiptData struct {
	TotalAmount float64 `json:"total_amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	VendorName  string  `json:"vendor_name"`
	Date        string  `json:"date"`
}

// LessonDraft is a lesson extracted from an uploaded PDF.
type LessonDraft struct {
	Title           string `json:"title"`
	Category        string `json:"category"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"duration_minutes"`
}

// BudgetAdvice is the LLM's answer to a spending breakdown.
type BudgetAdvice struct {
	Tips            []string           `json:"tips"`
	SuggestedLimits map[string]float64 `json:"suggested_limits"`
}

// InsightService is the abstract surface the controllers depend on.
type InsightService interface {
	UploadFile(ctx context.Context, filename string, data []byte) (fileRef string, err error)
	ExtractReceipt(ctx context.Context, fileRef string) (*ReceiptData, error)
	ExtractLesson(ctx context.Context, fileRef string) (*LessonDraft, error)
	SuggestBudget(ctx context.Context, monthlyIncome float64, spendByCategory map[string]float64) (*BudgetAdvice, error)
}

// InsightClient talks JSON over HTTP to the configured insight endpoint.
type InsightClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewInsightClient(cfg *config.Config) *InsightClient {
	return &InsightClient{
		baseURL: cfg.InsightAPIURL,
		apiKey:  cfg.InsightAPIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (ic *InsightClient) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	if ic.baseURL == "" {
		return "", ErrInsightUnavailable
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ic.baseURL+"/files", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ic.apiKey)

	resp, err := ic.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: %s", resp.Status)
	}

	var out struct {
		FileURL string `json:"file_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.FileURL, nil
}

// receiptSchema is sent along with the file reference so the extractor
// returns exactly the fields an expense needs.
var receiptSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"total_amount": map[string]interface{}{"type": "number", "description": "Total bill amount in INR"},
		"category": map[string]interface{}{
			"type": "string",
			"enum": []string{"food", "transport", "shopping", "entertainment", "utilities", "healthcare", "education", "groceries", "other"},
		},
		"description": map[string]interface{}{"type": "string", "description": "Brief description of the expense"},
		"vendor_name": map[string]interface{}{"type": "string", "description": "Name of the shop or vendor"},
		"date":        map[string]interface{}{"type": "string", "description": "Date on the receipt if visible"},
	},
}

var lessonSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"title":            map[string]interface{}{"type": "string"},
		"category":         map[string]interface{}{"type": "string"},
		"content":          map[string]interface{}{"type": "string", "description": "Lesson body in markdown"},
		"duration_minutes": map[string]interface{}{"type": "number"},
	},
}

func (ic *InsightClient) ExtractReceipt(ctx context.Context, fileRef string) (*ReceiptData, error) {
	var data ReceiptData
	if err := ic.extract(ctx, fileRef, receiptSchema, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (ic *InsightClient) ExtractLesson(ctx context.Context, fileRef string) (*LessonDraft, error) {
	var draft LessonDraft
	if err := ic.extract(ctx, fileRef, lessonSchema, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (ic *InsightClient) extract(ctx context.Context, fileRef string, schema map[string]interface{}, out interface{}) error {
	payload := map[string]interface{}{
		"file_url":    fileRef,
		"json_schema": schema,
	}

	var result struct {
		Status string          `json:"status"`
		Output json.RawMessage `json:"output"`
	}
	if err := ic.post(ctx, "/extract", payload, &result); err != nil {
		return err
	}
	if result.Status != "success" || len(result.Output) == 0 {
		return fmt.Errorf("extraction failed: status %q", result.Status)
	}
	return json.Unmarshal(result.Output, out)
}

func (ic *InsightClient) SuggestBudget(ctx context.Context, monthlyIncome float64, spendByCategory map[string]float64) (*BudgetAdvice, error) {
	payload := map[string]interface{}{
		"prompt": fmt.Sprintf(
			"Monthly income %.0f INR, spending by category: %v. Suggest practical saving tips and a monthly limit per category.",
			monthlyIncome, spendByCategory),
		"json_schema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"tips":             map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				"suggested_limits": map[string]interface{}{"type": "object"},
			},
		},
	}

	var advice BudgetAdvice
	if err := ic.post(ctx, "/llm", payload, &advice); err != nil {
		return nil, err
	}
	return &advice, nil
}

func (ic *InsightClient) post(ctx context.Context, path string, payload, out interface{}) error {
	if ic.baseURL == "" {
		return ErrInsightUnavailable
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ic.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ic.apiKey)

	resp, err := ic.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("insight service: %s: %s", resp.Status, msg)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
