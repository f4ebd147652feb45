package media

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Client calls the media service's deletion endpoint. Ground deletion
// uses it to clean up uploaded images, best effort.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// DeleteImage asks the media service to remove the stored file behind the
// given public URL.
func (c *Client) DeleteImage(ctx context.Context, imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}
	filename := path.Base(parsed.Path)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("filename", filename); err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/delete", &body)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("media service call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media service returned status %d", resp.StatusCode)
	}

	return nil
}
