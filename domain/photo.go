package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadPhotoBatch = "photo batch processed successfully"
	MessageSuccessUploadPhoto      = "photo uploaded successfully"
	MessageSuccessGetPhotos        = "photos retrieved successfully"

	MessageFailedUploadPhotoBatch = "failed to process photo batch"
	MessageFailedUploadPhoto      = "failed to upload photo"
	MessageFailedGetPhotos        = "failed to retrieve photos"

	ErrMissingZipPassword = errors.New("zip password is required for zip files")
	ErrInvalidArchive     = errors.New("invalid zip file or wrong password")
	ErrNoManifestFound    = errors.New("no xml file found in the zip archive")
	ErrMalformedXML       = errors.New("malformed xml document")
	ErrInvalidImageSize   = errors.New("invalid image size")
)

type (
	UploadPhotoArchiveRequest struct {
		File        *multipart.FileHeader `validate:"required"`
		ZipPassword string
	}

	UploadPhotoRequest struct {
		File      *multipart.FileHeader `validate:"required"`
		ImageType string                `validate:"required"`
		ImageSize int64
	}

	ExtractedImageResponse struct {
		ID               string    `json:"id"`
		URL              string    `json:"url"`
		MedewerkerNumber string    `json:"medewerker_number"`
		OriginalFilename string    `json:"original_filename"`
		ImageType        string    `json:"image_type"`
		ImageSize        int64     `json:"image_size"`
		OwnerUsername    string    `json:"owner_username,omitempty"`
		CreatedAt        time.Time `json:"created_at"`
	}
)
