package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
)

const defaultModel = "gpt-image-1"

type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls the OpenAI Images Edit API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: opts.HTTPClient,
		logger:     logger,
	}
}

// EditImage sends img plus prompt (and mask, when non-nil) to the images
// edit endpoint and returns the generated image bytes. The API key is
// checked here, on first use, not at construction.
func (c *Client) EditImage(ctx context.Context, img, mask []byte, prompt string) ([]byte, error) {
	if c.httpClient == nil {
		return nil, errors.New("http client is nil")
	}
	if c.apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	if len(img) == 0 {
		return nil, errors.New("image is empty")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt is empty")
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := form.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := form.WriteField("prompt", prompt); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	imgPart, err := form.CreateFormFile("image", "image.png")
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := imgPart.Write(img); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	if len(mask) > 0 {
		maskPart, err := form.CreateFormFile("mask", "mask.png")
		if err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
		if _, err := maskPart.Write(mask); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	url := c.baseURL + "/v1/images/edits"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("content-type", form.FormDataContentType())
	httpReq.Header.Set("authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return nil, fmt.Errorf("openai API %s: %s", httpResp.Status, strings.TrimSpace(string(rawBody)))
	}

	var decoded imageEditResponse
	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Data) == 0 || decoded.Data[0].B64JSON == "" {
		return nil, errors.New("openai API returned no image data")
	}

	out, err := base64.StdEncoding.DecodeString(decoded.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image data: %w", err)
	}

	c.logger.Debug("image edit complete", "model", c.model, "bytes", len(out))
	return out, nil
}

type imageEditResponse struct {
	Data []imageData `json:"data"`
}

type imageData struct {
	B64JSON string `json:"b64_json"`
}
