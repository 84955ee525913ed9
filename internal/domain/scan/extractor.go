package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/markwatch/markwatch/internal/domain/bulletin"
)

// HTTPExtractor calls the external text-extraction service over HTTP. The
// service does the OCR/text work; this client only ships the bulletin
// reference over and decodes the per-page payload.
type HTTPExtractor struct {
	baseURL string
	client  *http.Client
}

// NewHTTPExtractor creates an extraction client for the given base URL.
// A zero timeout defaults to 60 seconds; extraction is the slow stage.
func NewHTTPExtractor(baseURL string, timeout time.Duration) *HTTPExtractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPExtractor{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type extractRequest struct {
	BulletinURL string `json:"bulletin_url"`
}

type extractImage struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type,omitempty"`
}

type extractPage struct {
	Text   string         `json:"text"`
	Images []extractImage `json:"images,omitempty"`
}

type extractResponse struct {
	Pages []extractPage `json:"pages"`
}

// Extract posts the bulletin reference to the extraction service and maps
// the response into per-page text and image lists.
func (e *HTTPExtractor) Extract(ctx context.Context, bulletinRef string) ([]string, [][]bulletin.PageImage, error) {
	payload, err := json.Marshal(extractRequest{BulletinURL: bulletinRef})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/extract", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, nil, fmt.Errorf("failed to decode extract response: %w", err)
	}

	pages := make([]string, len(decoded.Pages))
	images := make([][]bulletin.PageImage, len(decoded.Pages))
	for i, page := range decoded.Pages {
		pages[i] = page.Text
		pageImages := make([]bulletin.PageImage, len(page.Images))
		for j, img := range page.Images {
			pageImages[j] = bulletin.PageImage{Data: img.Data, ContentType: img.ContentType}
		}
		images[i] = pageImages
	}

	return pages, images, nil
}
