package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ImageClient 文生图入口
type ImageClient interface {
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

// ClipDropClient ClipDrop 没有官方 Go SDK，接口就是一个 multipart POST
type ClipDropClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClipDropClient(apiKey, baseURL string) *ClipDropClient {
	return &ClipDropClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *ClipDropClient) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-image/v1", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("clipdrop status %d: %s", resp.StatusCode, msg)
	}
	return io.ReadAll(resp.Body)
}
