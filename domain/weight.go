package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessImportCSV      = "weight data imported successfully"
	MessageSuccessGetWeightData  = "weight data retrieved successfully"
	MessageSuccessGetSummary     = "weight summary retrieved successfully"
	MessageSuccessLatestDatetime = "latest measurement datetime retrieved successfully"

	MessageFailedImportCSV      = "failed to import weight data"
	MessageFailedGetWeightData  = "failed to retrieve weight data"
	MessageFailedGetSummary     = "failed to retrieve weight summary"
	MessageFailedLatestDatetime = "failed to retrieve latest measurement datetime"

	ErrTruncatedFile  = errors.New("csv file is shorter than the vendor preamble")
	ErrNoMeasurements = errors.New("no measurements available")
)

type (
	ImportWeightCSVResponse struct {
		Message       string `json:"message"`
		ImportedCount int    `json:"imported_count"`
		ErrorCount    int    `json:"error_count"`
	}

	WeightMeasurementResponse struct {
		MeasuredAt time.Time `json:"measured_at"`
		Weight     float64   `json:"weight"`
		BoneMass   float64   `json:"bone_mass"`
		BodyFat    float64   `json:"body_fat"`
		BodyWater  float64   `json:"body_water"`
		MuscleMass float64   `json:"muscle_mass"`
		BMI        float64   `json:"bmi"`
	}

	MetricSummary struct {
		Avg float64 `json:"avg"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	}

	WeightSummaryResponse struct {
		Weight     MetricSummary `json:"weight"`
		BoneMass   MetricSummary `json:"bone_mass"`
		BodyFat    MetricSummary `json:"body_fat"`
		BodyWater  MetricSummary `json:"body_water"`
		MuscleMass MetricSummary `json:"muscle_mass"`
		BMI        MetricSummary `json:"bmi"`
	}

	LatestDatetimeResponse struct {
		LatestDatetime *time.Time `json:"latest_datetime"`
	}
)
