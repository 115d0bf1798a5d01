package detection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// ============================================================
// Analyzer client
// ============================================================

// expectedChunks is how many stream reads a typical analysis takes; progress
// is reported against it and capped at 100.
const expectedChunks = 80

// Progress is reported after every chunk of the analyzer stream.
type Progress struct {
	Percent int
	Text    string
}

// Client posts floor-plan images to the analysis service and reads its
// streamed reply.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Analyze uploads the image as multipart field "floorPlan" and returns the
// full streamed text. onProgress may be nil.
func (c *Client) Analyze(ctx context.Context, filename string, image io.Reader, onProgress func(Progress)) (string, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty image")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="floorPlan"; filename="%s"`, filename))
	h.Set("Content-Type", http.DetectContentType(data))

	part, err := writer.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/analyze", body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	log.Printf("[ANALYZE] Uploading %s (%d bytes) to %s", filename, len(data), c.BaseURL)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call analyzer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("analyzer returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return readStream(resp.Body, onProgress)
}

func readStream(r io.Reader, onProgress func(Progress)) (string, error) {
	var accumulated strings.Builder
	buf := make([]byte, 4096)
	chunks := 0

	for {
		n, err := r.Read(buf)
		if n > 0 {
			accumulated.Write(buf[:n])
			chunks++
			if onProgress != nil {
				onProgress(Progress{
					Percent: min(chunks*100/expectedChunks, 100),
					Text:    accumulated.String(),
				})
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return accumulated.String(), fmt.Errorf("read stream: %w", err)
		}
	}

	log.Printf("[ANALYZE] Stream complete: %d chunks, %d bytes", chunks, accumulated.Len())
	return accumulated.String(), nil
}
