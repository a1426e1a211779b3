package photo

import (
	"Employee-Portal-Backend/domain"
	"Employee-Portal-Backend/entities"
	"Employee-Portal-Backend/internal/utils/storage"
	"Employee-Portal-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PhotoService interface {
		IngestPhotoArchive(ctx context.Context, req domain.UploadPhotoArchiveRequest, userID string) ([]domain.ExtractedImageResponse, error)
		UploadPhoto(ctx context.Context, req domain.UploadPhotoRequest, userID string) (domain.ExtractedImageResponse, error)
		GetUploadedPhotos(ctx context.Context, userID string, role string) ([]domain.ExtractedImageResponse, error)
		CleanupOldImages(ctx context.Context, maxAge time.Duration) (int, error)
	}

	photoService struct {
		photoRepository PhotoRepository
		userRepository  user.UserRepository
		unwrapper       *ArchiveUnwrapper
		s3              storage.AwsS3
	}
)

func NewPhotoService(photoRepository PhotoRepository, userRepository user.UserRepository, unwrapper *ArchiveUnwrapper, s3 storage.AwsS3) PhotoService {
	return &photoService{
		photoRepository: photoRepository,
		userRepository:  userRepository,
		unwrapper:       unwrapper,
		s3:              s3,
	}
}

// IngestPhotoArchive unwraps the upload, extracts every photo link from the
// vendor manifest and persists one image per link in document order. A
// storage failure aborts the batch; images persisted before the failure
// stay committed.
func (s *photoService) IngestPhotoArchive(ctx context.Context, req domain.UploadPhotoArchiveRequest, userID string) ([]domain.ExtractedImageResponse, error) {
	if req.File == nil {
		return nil, domain.ErrNoFileProvided
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	data, err := readMultipartFile(req.File)
	if err != nil {
		return nil, err
	}

	xmlBytes, err := s.unwrapper.Unwrap(req.File.Filename, data, req.ZipPassword)
	if err != nil {
		return nil, err
	}

	links, err := ExtractPhotoLinks(xmlBytes)
	if err != nil {
		return nil, err
	}

	saved := make([]domain.ExtractedImageResponse, 0, len(links))
	for _, link := range links {
		res, err := s.persistPhotoLink(ctx, link, owner)
		if err != nil {
			log.Printf("photo batch aborted after %d of %d images: %v", len(saved), len(links), err)
			return saved, err
		}
		saved = append(saved, res)
	}

	return saved, nil
}

func (s *photoService) persistPhotoLink(ctx context.Context, link PhotoLink, owner *entities.User) (domain.ExtractedImageResponse, error) {
	fileName := fmt.Sprintf(
		"%s_%s_%s.%s",
		owner.Username,
		link.MedewerkerNumber,
		time.Now().UTC().Format("20060102150405"),
		link.ImageType,
	)

	objectKey, err := s.s3.UploadBytes(fileName, link.Data, "fotos", contentTypeFor(link.ImageType))
	if err != nil {
		return domain.ExtractedImageResponse{}, err
	}

	image := &entities.ExtractedImage{
		ID:               uuid.New(),
		UserID:           owner.ID,
		MedewerkerNumber: link.MedewerkerNumber,
		ObjectKey:        objectKey,
		ImageURL:         s.s3.GetPublicLinkKey(objectKey),
		OriginalFilename: fileName,
		ImageType:        link.ImageType,
		ImageSize:        int64(len(link.Data)),
	}

	if err := s.photoRepository.CreateImage(ctx, image); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.ExtractedImageResponse{}, err
	}

	return imageResponse(image, ""), nil
}

// UploadPhoto stores a single ad-hoc image. The image type and size come
// from the client and the medewerker number stays empty.
func (s *photoService) UploadPhoto(ctx context.Context, req domain.UploadPhotoRequest, userID string) (domain.ExtractedImageResponse, error) {
	if req.File == nil {
		return domain.ExtractedImageResponse{}, domain.ErrNoFileProvided
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ExtractedImageResponse{}, domain.ErrUserNotFound
		}
		return domain.ExtractedImageResponse{}, err
	}

	objectKey, err := s.s3.UploadFile(req.File.Filename, req.File, "fotos", storage.AllowImage...)
	if err != nil {
		return domain.ExtractedImageResponse{}, err
	}

	image := &entities.ExtractedImage{
		ID:               uuid.New(),
		UserID:           owner.ID,
		MedewerkerNumber: "",
		ObjectKey:        objectKey,
		ImageURL:         s.s3.GetPublicLinkKey(objectKey),
		OriginalFilename: req.File.Filename,
		ImageType:        req.ImageType,
		ImageSize:        req.ImageSize,
	}

	if err := s.photoRepository.CreateImage(ctx, image); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.ExtractedImageResponse{}, err
	}

	return imageResponse(image, ""), nil
}

// GetUploadedPhotos lists the caller's images; admins see every image with
// the owner's username attached.
func (s *photoService) GetUploadedPhotos(ctx context.Context, userID string, role string) ([]domain.ExtractedImageResponse, error) {
	var (
		images []*entities.ExtractedImage
		err    error
	)

	if role == domain.RoleAdmin {
		images, err = s.photoRepository.GetAllImages(ctx)
	} else {
		images, err = s.photoRepository.GetImagesByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	response := make([]domain.ExtractedImageResponse, 0, len(images))
	for _, image := range images {
		ownerUsername := ""
		if role == domain.RoleAdmin && image.User != nil {
			ownerUsername = image.User.Username
		}
		response = append(response, imageResponse(image, ownerUsername))
	}

	return response, nil
}

// CleanupOldImages deletes images older than maxAge, blob first and record
// second. Blob and record deletion are not atomic: a failure in between
// leaves the record behind for the next run. Per-image failures are logged
// and the sweep continues.
func (s *photoService) CleanupOldImages(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	images, err := s.photoRepository.GetImagesOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, image := range images {
		if image.ObjectKey != "" {
			if err := s.s3.DeleteFile(image.ObjectKey); err != nil {
				log.Printf("failed to delete blob %s: %v", image.ObjectKey, err)
				continue
			}
		}
		if err := s.photoRepository.DeleteImage(ctx, image.ID.String()); err != nil {
			log.Printf("failed to delete image record %s: %v", image.ID, err)
			continue
		}
		deleted++
	}

	return deleted, nil
}

func imageResponse(image *entities.ExtractedImage, ownerUsername string) domain.ExtractedImageResponse {
	return domain.ExtractedImageResponse{
		ID:               image.ID.String(),
		URL:              image.ImageURL,
		MedewerkerNumber: image.MedewerkerNumber,
		OriginalFilename: image.OriginalFilename,
		ImageType:        image.ImageType,
		ImageSize:        image.ImageSize,
		OwnerUsername:    ownerUsername,
		CreatedAt:        image.CreatedAt,
	}
}

func contentTypeFor(imageType string) string {
	if imageType == "png" {
		return "image/png"
	}
	return "image/jpeg"
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
