package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"auction-storefront/internal/domain/image"
	"auction-storefront/internal/domain/shared"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageService(b *backend) *ImageService {
	return NewImageService(ImageServiceParams{API: b.api, Logger: zerolog.Nop()})
}

func TestValidateImageFile(t *testing.T) {
	service := NewImageService(ImageServiceParams{Logger: zerolog.Nop()})

	tests := []struct {
		name      string
		file      image.File
		wantValid bool
		wantError string
	}{
		{
			name:      "jpeg_2mb",
			file:      image.File{Name: "a.jpg", ContentType: "image/jpeg", Size: 2 * 1024 * 1024},
			wantValid: true,
		},
		{
			name:      "png_6mb",
			file:      image.File{Name: "b.png", ContentType: "image/png", Size: 6 * 1024 * 1024},
			wantError: shared.ErrImageTooLarge.Error(),
		},
		{
			name:      "pdf",
			file:      image.File{Name: "c.pdf", ContentType: "application/pdf", Size: 1024},
			wantError: shared.ErrImageTypeNotAllowed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.ValidateImageFile(tt.file)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantError, result.Error)
		})
	}
}

func TestUploadImage_RequiresAuctionID(t *testing.T) {
	service := NewImageService(ImageServiceParams{Logger: zerolog.Nop()})

	_, err := service.UploadImage(context.Background(), image.NewFile("a.jpg", "image/jpeg", []byte("x")), 0, image.UploadOptions{}, nil)
	require.ErrorIs(t, err, shared.ErrAuctionIDRequired)
}

func TestUploadImage_SurfacesBackendMessage(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"Auction not found or you are not the seller"}`)
	})
	service := newImageService(b)

	_, err := service.UploadImage(context.Background(), image.NewFile("a.jpg", "image/jpeg", []byte("x")), 3, image.UploadOptions{}, nil)
	require.Error(t, err)
	assert.Equal(t, "Auction not found or you are not the seller", err.Error())
}

func TestUploadImage_MultipartFields(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Images/upload/8", r.URL.Path)
		assert.Equal(t, "Bearer seller-token", r.Header.Get("Authorization"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		file, header, err := r.FormFile(FieldImageFile)
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "front.png", header.Filename)
		assert.Equal(t, "true", r.FormValue(FieldIsPrimary))
		assert.Equal(t, "Front view", r.FormValue(FieldAltText))
		assert.Equal(t, "2", r.FormValue(FieldDisplayOrder))

		writeJSON(w, http.StatusOK, `{"data":{"imageId":31,"imageUrl":"/uploads/front.png","isPrimary":true,"displayOrder":2}}`)
	})
	b.login(t, "seller-token")

	order := 2
	var progress []int
	uploaded, err := newImageService(b).UploadImage(context.Background(),
		image.NewFile("front.png", "image/png", bytes.Repeat([]byte("p"), 64*1024)),
		8,
		image.UploadOptions{IsPrimary: true, AltText: "Front view", DisplayOrder: &order},
		func(percent int) { progress = append(progress, percent) },
	)
	require.NoError(t, err)

	assert.Equal(t, int64(31), uploaded.ID)
	assert.Equal(t, int64(8), uploaded.AuctionID)
	assert.Equal(t, b.server.URL+"/uploads/front.png", uploaded.URL)
	require.NotEmpty(t, progress)
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestUploadMultipleImages_PartialFailure(t *testing.T) {
	calls := 0
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		_, header, err := r.FormFile(FieldImageFile)
		if !assert.NoError(t, err) {
			return
		}

		if header.Filename == "two.jpg" {
			writeJSON(w, http.StatusBadRequest, `{"message":"Invalid image content"}`)
			return
		}
		assert.Equal(t, fmt.Sprint(header.Filename == "one.jpg"), r.FormValue(FieldIsPrimary))
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"id":%d,"url":"/uploads/%s"}`, calls, header.Filename))
	})

	files := []image.File{
		image.NewFile("one.jpg", "image/jpeg", []byte("1")),
		image.NewFile("two.jpg", "image/jpeg", []byte("2")),
		image.NewFile("three.jpg", "image/jpeg", []byte("3")),
	}

	var progress []int
	result := newImageService(b).UploadMultipleImages(context.Background(), 5, files, func(percent int) {
		progress = append(progress, percent)
	})

	assert.Equal(t, 3, calls)
	assert.Len(t, result.Successful, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "two.jpg", result.Failed[0].File)
	assert.Contains(t, result.Failed[0].Error, "Invalid image content")

	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Equal(t, 100, progress[len(progress)-1])
}

func TestGetAuctionImages_SortedAndResolved(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/images/auction/3", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `[
			{"Id":2,"Url":"/uploads/b.jpg","DisplayOrder":1},
			{"Id":1,"Url":"https://cdn.example.com/a.jpg","DisplayOrder":0,"IsPrimary":true},
			{"Id":3,"Url":"uploads/c.jpg","DisplayOrder":2}
		]`)
	})

	images, err := newImageService(b).GetAuctionImages(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, images, 3)

	assert.Equal(t, []int64{1, 2, 3}, []int64{images[0].ID, images[1].ID, images[2].ID})
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].URL)
	assert.True(t, strings.HasSuffix(images[2].URL, "/uploads/c.jpg"))
	assert.Equal(t, b.server.URL+"/uploads/b.jpg", images[1].URL)
}

func TestImageMutations(t *testing.T) {
	var calls []string
	var reorderBody string
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/api/images/reorder" {
			buf := new(bytes.Buffer)
			buf.ReadFrom(r.Body)
			reorderBody = buf.String()
		}
		w.WriteHeader(http.StatusNoContent)
	})
	service := newImageService(b)
	ctx := context.Background()

	require.NoError(t, service.SetPrimaryImage(ctx, 4))
	require.NoError(t, service.DeleteImage(ctx, 5))
	require.NoError(t, service.ReorderImages(ctx, 2, []int64{6, 4}))
	require.ErrorIs(t, service.ReorderImages(ctx, 2, nil), shared.ErrImageIDsRequired)

	assert.Equal(t, []string{
		"PUT /api/images/4/set-primary",
		"DELETE /api/images/5",
		"PUT /api/images/reorder",
	}, calls)
	assert.JSONEq(t, `{"AuctionId":2,"ImageIds":[6,4]}`, reorderBody)
}
