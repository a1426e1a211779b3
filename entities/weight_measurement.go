package entities

import (
	"time"

	"github.com/google/uuid"
)

// WeightMeasurement holds one body-composition reading. MeasuredAt is the
// natural key: the CSV importer upserts on it, so at most one row exists
// per distinct timestamp.
type WeightMeasurement struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MeasuredAt time.Time `gorm:"uniqueIndex" json:"measured_at"`
	Weight     float64   `json:"weight"`
	BoneMass   float64   `json:"bone_mass"`
	BodyFat    float64   `json:"body_fat"`
	BodyWater  float64   `json:"body_water"`
	MuscleMass float64   `json:"muscle_mass"`
	BMI        float64   `json:"bmi"`

	Timestamp
}
