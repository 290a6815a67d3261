package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
)

// FormField is a plain multipart field
type FormField struct {
	Name  string
	Value string
}

// UploadRequest describes a multipart upload of a single file
type UploadRequest struct {
	Path        string
	FileField   string
	FileName    string
	ContentType string
	Content     io.Reader
	Fields      []FormField
}

// Upload sends a multipart request. onProgress, when set, is called with the
// percentage of the body consumed by the transport each time it changes, and
// never after Upload returns. A failed upload reports the backend's message
// as sent, without category substitution.
func (c *Client) Upload(ctx context.Context, r UploadRequest, onProgress func(percent int)) (*Payload, error) {
	body, contentType, err := buildMultipart(r)
	if err != nil {
		return nil, err
	}

	reader := newProgressReader(body, onProgress)
	defer reader.stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(r.Path, nil), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = int64(body.Len())
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	c.authorize(ctx, req)

	payload, err := c.send(ctx, req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.Message = apiErr.Raw
		}
		return nil, err
	}
	reader.finish()
	return payload, nil
}

func buildMultipart(r UploadRequest) (*bytes.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, r.FileField, r.FileName))
	if r.ContentType != "" {
		header.Set("Content-Type", r.ContentType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if r.Content != nil {
		if _, err := io.Copy(part, r.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part: %w", err)
		}
	}

	for _, field := range r.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	return bytes.NewReader(buf.Bytes()), writer.FormDataContentType(), nil
}

// progressReader reports how much of the body has been read
type progressReader struct {
	reader     io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(int)
	stopped    bool
	mu         sync.Mutex
}

func newProgressReader(body *bytes.Reader, onProgress func(int)) *progressReader {
	return &progressReader{
		reader:     body,
		total:      int64(body.Len()),
		last:       -1,
		onProgress: onProgress,
	}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	if n > 0 {
		p.mu.Lock()
		p.read += int64(n)
		p.report(p.percent())
		p.mu.Unlock()
	}
	return n, err
}

// stop cuts off reporting. The transport may keep reading the body on its own
// goroutine after the response arrived.
func (p *progressReader) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

// finish reports completion once the response has arrived
func (p *progressReader) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.report(100)
}

func (p *progressReader) percent() int {
	if p.total <= 0 {
		return 100
	}
	return int(p.read * 100 / p.total)
}

func (p *progressReader) report(percent int) {
	if p.onProgress == nil || p.stopped || percent == p.last {
		return
	}
	p.last = percent
	p.onProgress(percent)
}
