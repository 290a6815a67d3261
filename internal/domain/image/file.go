package image

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// File is an image file waiting to be uploaded
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadOptions carries the optional multipart fields of an upload
type UploadOptions struct {
	IsPrimary    bool
	AltText      string
	DisplayOrder *int
}

// FailedUpload records a file that could not be uploaded
type FailedUpload struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// UploadResult collects the outcome of a batch upload
type UploadResult struct {
	Successful []Image        `json:"successful"`
	Failed     []FailedUpload `json:"failed"`
}

// NewFile builds a File from in-memory content
func NewFile(name, contentType string, content []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	}
}

// Open reads a file from disk and detects its content type from the
// extension, falling back to sniffing the first bytes
func Open(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return NewFile(filepath.Base(path), contentType, data), nil
}
