package weight

import (
	"Employee-Portal-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	WeightRepository interface {
		UpsertMeasurement(ctx context.Context, measurement *entities.WeightMeasurement) error
		GetLatestMeasurement(ctx context.Context) (*entities.WeightMeasurement, error)
		GetAllMeasurements(ctx context.Context) ([]*entities.WeightMeasurement, error)
	}

	weightRepository struct {
		db *gorm.DB
	}
)

func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &weightRepository{db: db}
}

// UpsertMeasurement inserts the measurement or, when a row with the same
// timestamp already exists, overwrites its metric columns.
func (r *weightRepository) UpsertMeasurement(ctx context.Context, measurement *entities.WeightMeasurement) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "measured_at"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"weight", "bone_mass", "body_fat", "body_water", "muscle_mass", "bmi", "updated_at",
		}),
	}).Create(measurement).Error
}

func (r *weightRepository) GetLatestMeasurement(ctx context.Context) (*entities.WeightMeasurement, error) {
	var measurement entities.WeightMeasurement
	if err := r.db.WithContext(ctx).
		Order("measured_at desc").
		First(&measurement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &measurement, nil
}

func (r *weightRepository) GetAllMeasurements(ctx context.Context) ([]*entities.WeightMeasurement, error) {
	var measurements []*entities.WeightMeasurement
	if err := r.db.WithContext(ctx).
		Order("measured_at asc").
		Find(&measurements).Error; err != nil {
		return nil, err
	}
	return measurements, nil
}
