package entities

import (
	"github.com/google/uuid"
)

type ExtractedImage struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	MedewerkerNumber string    `json:"medewerker_number"` // empty for ad-hoc uploads
	ObjectKey        string    `json:"-"`
	ImageURL         string    `json:"image_url"`
	OriginalFilename string    `json:"original_filename"`
	ImageType        string    `json:"image_type"` // "jpg" or "png"
	ImageSize        int64     `json:"image_size"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
