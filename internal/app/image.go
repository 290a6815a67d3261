package app

import (
	"context"
	"fmt"
	"strconv"

	"auction-storefront/internal/adapters/httpapi"
	"auction-storefront/internal/adapters/mapping"
	"auction-storefront/internal/domain/image"
	"auction-storefront/internal/domain/shared"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Multipart field names of the upload endpoint
const (
	FieldImageFile    = "ImageFile"
	FieldIsPrimary    = "IsPrimary"
	FieldAltText      = "AltText"
	FieldDisplayOrder = "DisplayOrder"
)

// ImageService uploads and manages auction images. Nothing is cached: callers
// re-fetch the list after a mutation.
type ImageService struct {
	api    *httpapi.Client
	logger zerolog.Logger
}

type ImageServiceParams struct {
	// API is resolved against the image base URL, which also serves the files
	API    *httpapi.Client
	Logger zerolog.Logger
}

// NewImageService creates a new image service
func NewImageService(params ImageServiceParams) *ImageService {
	return &ImageService{
		api:    params.API,
		logger: params.Logger.With().Str("component", "image_service").Logger(),
	}
}

// ValidateImageFile checks type and size before any upload
func (s *ImageService) ValidateImageFile(file image.File) image.Validation {
	return image.Validate(file)
}

// UploadImage uploads one file to an existing auction
func (s *ImageService) UploadImage(ctx context.Context, file image.File, auctionID int64, opts image.UploadOptions, onProgress func(percent int)) (*image.Image, error) {
	if auctionID <= 0 {
		return nil, shared.ErrAuctionIDRequired
	}
	if file.Content == nil {
		return nil, shared.ErrImageFileRequired
	}

	fields := []httpapi.FormField{{Name: FieldIsPrimary, Value: strconv.FormatBool(opts.IsPrimary)}}
	if opts.AltText != "" {
		fields = append(fields, httpapi.FormField{Name: FieldAltText, Value: opts.AltText})
	}
	if opts.DisplayOrder != nil {
		fields = append(fields, httpapi.FormField{Name: FieldDisplayOrder, Value: strconv.Itoa(*opts.DisplayOrder)})
	}

	s.logger.Debug().
		Int64("auction_id", auctionID).
		Str("file", file.Name).
		Int64("size", file.Size).
		Msg("Uploading image")

	payload, err := s.api.Upload(ctx, httpapi.UploadRequest{
		Path:        fmt.Sprintf("/api/Images/upload/%d", auctionID),
		FileField:   FieldImageFile,
		FileName:    file.Name,
		ContentType: file.ContentType,
		Content:     file.Content,
		Fields:      fields,
	}, onProgress)
	if err != nil {
		s.logger.Error().Err(err).Int64("auction_id", auctionID).Str("file", file.Name).Msg("Failed to upload image")
		return nil, err
	}

	uploaded := s.toImage(payload.Data(), auctionID)
	s.logger.Info().Int64("auction_id", auctionID).Int64("image_id", uploaded.ID).Msg("Image uploaded")
	return &uploaded, nil
}

// UploadMultipleImages uploads files one after another so progress can be
// reported as a single percentage over the batch. A failing file is recorded
// and the batch goes on. The first file becomes the primary image.
func (s *ImageService) UploadMultipleImages(ctx context.Context, auctionID int64, files []image.File, onProgress func(percent int)) image.UploadResult {
	result := image.UploadResult{
		Successful: []image.Image{},
		Failed:     []image.FailedUpload{},
	}
	total := len(files)

	for i, file := range files {
		order := i
		opts := image.UploadOptions{IsPrimary: i == 0, DisplayOrder: &order}

		var fileProgress func(int)
		if onProgress != nil {
			index := i
			fileProgress = func(percent int) {
				onProgress((index*100 + percent) / total)
			}
		}

		uploaded, err := s.UploadImage(ctx, file, auctionID, opts, fileProgress)
		if err != nil {
			result.Failed = append(result.Failed, image.FailedUpload{File: file.Name, Error: err.Error()})
			continue
		}
		result.Successful = append(result.Successful, *uploaded)
	}

	if onProgress != nil && total > 0 {
		onProgress(100)
	}

	s.logger.Info().
		Int64("auction_id", auctionID).
		Int("successful", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("Batch upload finished")
	return result
}

// GetAuctionImages lists the images of an auction in display order. A token
// is sent when present but is not required.
func (s *ImageService) GetAuctionImages(ctx context.Context, auctionID int64) ([]image.Image, error) {
	payload, err := s.api.Get(ctx, fmt.Sprintf("/api/images/auction/%d", auctionID))
	if err != nil {
		return nil, err
	}

	data := payload.Data()
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: expected a list of images", shared.ErrUnexpectedPayload)
	}

	images := mapping.Images(data)
	for i := range images {
		if images[i].AuctionID == 0 {
			images[i].AuctionID = auctionID
		}
		images[i].URL = image.ResolveURL(s.api.BaseURL(), images[i].URL)
	}
	image.SortByDisplayOrder(images)
	return images, nil
}

// SetPrimaryImage flags an image as the auction's primary image
func (s *ImageService) SetPrimaryImage(ctx context.Context, imageID int64) error {
	_, err := s.api.Put(ctx, fmt.Sprintf("/api/images/%d/set-primary", imageID), nil)
	if err != nil {
		s.logger.Error().Err(err).Int64("image_id", imageID).Msg("Failed to set primary image")
	}
	return err
}

// DeleteImage deletes an image
func (s *ImageService) DeleteImage(ctx context.Context, imageID int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/api/images/%d", imageID))
	if err != nil {
		s.logger.Error().Err(err).Int64("image_id", imageID).Msg("Failed to delete image")
	}
	return err
}

// ReorderImages sets the display order to the order of imageIDs
func (s *ImageService) ReorderImages(ctx context.Context, auctionID int64, imageIDs []int64) error {
	if auctionID <= 0 {
		return shared.ErrAuctionIDRequired
	}
	if len(imageIDs) == 0 {
		return shared.ErrImageIDsRequired
	}

	_, err := s.api.Put(ctx, "/api/images/reorder", map[string]interface{}{
		"AuctionId": auctionID,
		"ImageIds":  imageIDs,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("auction_id", auctionID).Msg("Failed to reorder images")
	}
	return err
}

func (s *ImageService) toImage(r gjson.Result, auctionID int64) image.Image {
	img := mapping.Image(r)
	if img.AuctionID == 0 {
		img.AuctionID = auctionID
	}
	img.URL = image.ResolveURL(s.api.BaseURL(), img.URL)
	return img
}
