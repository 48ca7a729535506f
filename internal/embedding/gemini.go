package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"workorder-classifier-go/internal/config"
)

// GeminiClient calls the Gemini embedContent endpoint
// (text-embedding-004 by default).
type GeminiClient struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
	timeout time.Duration
}

func NewGeminiClient(cfg config.Config) (*GeminiClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}
	timeout := time.Duration(cfg.EmbedTimeoutSec) * time.Second
	return &GeminiClient{
		baseURL: cfg.GeminiURL,
		model:   cfg.GeminiModel,
		apiKey:  cfg.GeminiAPIKey,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}, nil
}

type embedRequest struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

type embedResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float64, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:embedContent?key=%s", c.baseURL, c.model, c.apiKey)

	var reqBody embedRequest
	reqBody.Content.Parts = []struct {
		Text string `json:"text"`
	}{{Text: text}}
	data, _ := json.Marshal(reqBody)

	var out embedResponse
	if err := c.doJSON(ctx, endpoint, data, &out); err != nil {
		return nil, err
	}
	if out.Error.Code != 0 {
		return nil, fmt.Errorf("embed error: code=%d message=%s", out.Error.Code, out.Error.Message)
	}
	if len(out.Embedding.Values) == 0 {
		return nil, errors.New("embed returned empty vector")
	}
	return out.Embedding.Values, nil
}

// doJSON posts and decodes with exponential backoff on transport and
// 5xx errors. 4xx responses fail immediately: retrying a bad request or
// an exhausted quota only burns more quota.
func (c *GeminiClient) doJSON(ctx context.Context, endpoint string, payload []byte, target any) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.timeout

	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("request failed: status=%d body=%s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}
