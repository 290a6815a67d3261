package httpapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-storefront/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_MultipartWithProgress(t *testing.T) {
	content := bytes.Repeat([]byte{0xff}, 256*1024)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Images/upload/7", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("ImageFile")
		require.NoError(t, err)
		defer file.Close()

		data, _ := io.ReadAll(file)
		assert.Equal(t, len(content), len(data))
		assert.Equal(t, "photo.jpg", header.Filename)
		assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.FormValue("IsPrimary"))
		assert.Equal(t, "Front view", r.FormValue("AltText"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":11,"url":"/uploads/photo.jpg"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, staticTokens{token: "tok"})

	var progress []int
	payload, err := c.Upload(context.Background(), UploadRequest{
		Path:        "/api/Images/upload/7",
		FileField:   "ImageFile",
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
		Content:     bytes.NewReader(content),
		Fields: []FormField{
			{Name: "IsPrimary", Value: "true"},
			{Name: "AltText", Value: "Front view"},
		},
	}, func(percent int) {
		progress = append(progress, percent)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), payload.JSON().Get("id").Int())

	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.Greater(t, progress[i], progress[i-1])
	}
}

func TestUpload_ErrorMessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Auction already has 10 images"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	_, err := c.Upload(context.Background(), UploadRequest{
		Path:      "/api/Images/upload/7",
		FileField: "ImageFile",
		FileName:  "a.png",
		Content:   bytes.NewReader([]byte("png")),
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "Auction already has 10 images", err.Error())
}

func TestUpload_KeepsBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Auction not found or you are not the seller"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	_, err := c.Upload(context.Background(), UploadRequest{
		Path:      "/api/Images/upload/7",
		FileField: "ImageFile",
		FileName:  "a.png",
		Content:   bytes.NewReader([]byte("png")),
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "Auction not found or you are not the seller", err.Error())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestProgressReader_SilentAfterStop(t *testing.T) {
	var progress []int
	reader := newProgressReader(bytes.NewReader(make([]byte, 100)), func(percent int) {
		progress = append(progress, percent)
	})

	buf := make([]byte, 40)
	_, err := reader.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []int{40}, progress)

	reader.stop()
	_, err = reader.Read(buf)
	require.NoError(t, err)
	reader.finish()
	assert.Equal(t, []int{40}, progress)
}
