package photo

import (
	"Employee-Portal-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	PhotoRepository interface {
		CreateImage(ctx context.Context, image *entities.ExtractedImage) error
		GetImagesByUser(ctx context.Context, userID string) ([]*entities.ExtractedImage, error)
		GetAllImages(ctx context.Context) ([]*entities.ExtractedImage, error)
		GetImagesOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.ExtractedImage, error)
		DeleteImage(ctx context.Context, id string) error
	}

	photoRepository struct {
		db *gorm.DB
	}
)

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) CreateImage(ctx context.Context, image *entities.ExtractedImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *photoRepository) GetImagesByUser(ctx context.Context, userID string) ([]*entities.ExtractedImage, error) {
	var images []*entities.ExtractedImage
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *photoRepository) GetAllImages(ctx context.Context) ([]*entities.ExtractedImage, error) {
	var images []*entities.ExtractedImage
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *photoRepository) GetImagesOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.ExtractedImage, error) {
	var images []*entities.ExtractedImage
	if err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *photoRepository) DeleteImage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ExtractedImage{}).Error
}
