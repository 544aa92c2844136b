package detect

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"CaneGuard/internal/service/metrics"
	"CaneGuard/pkg/config"
	xhttp "CaneGuard/pkg/http"
)

// HTTPServiceBase provides a DRY foundation for model runtime HTTP clients.
// It centralizes client construction, JSON and multipart request handling and
// per-endpoint instrumentation.
type HTTPServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

// NewHTTPServiceBase builds an HTTP client with timeout and base URL from config.
func NewHTTPServiceBase(cfg *config.Config) *HTTPServiceBase {
	metrics.Register()
	return &HTTPServiceBase{
		baseURL: cfg.Models.ServiceURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.Models.Timeout)),
	}
}

// PostJSON posts the given payload to `path` under baseURL and decodes JSON into dest.
func (b *HTTPServiceBase) PostJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("model runtime http client not initialized")
	}
	start := time.Now()
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    b.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	metrics.ModelLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelErrors.WithLabelValues(path).Inc()
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

// PostMultipart posts a file plus form fields to `path` and decodes JSON into dest.
func (b *HTTPServiceBase) PostMultipart(ctx context.Context, path, fileField, filename string, file []byte, fields map[string]string, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("model runtime http client not initialized")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	start := time.Now()
	err = b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    b.baseURL + path,
		Headers: map[string]string{
			"Content-Type": mw.FormDataContentType(),
		},
		Body: &body,
	}, dest)
	metrics.ModelLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelErrors.WithLabelValues(path).Inc()
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}
