package weight

import (
	"Employee-Portal-Backend/domain"
	"Employee-Portal-Backend/entities"
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The vendor export starts with a fixed 9-line preamble before the header
// row. Both the preamble length and the column names are contractual
// constants of the export format.
const preambleLines = 9

const measuredAtLayout = "01/02/2006 - 15:04"

const (
	fieldDateTime   = "Date - Time"
	fieldWeight     = "Body weight (kg)"
	fieldBoneMass   = "Bone mass (%)"
	fieldBodyFat    = "Body fat (%)"
	fieldBodyWater  = "Body water (%)"
	fieldMuscleMass = "Muscle mass (%)"
	fieldBMI        = "BMI"
)

type (
	WeightService interface {
		ImportCSV(ctx context.Context, file io.Reader) (domain.ImportWeightCSVResponse, error)
		GetMeasurements(ctx context.Context) ([]domain.WeightMeasurementResponse, error)
		GetLatestDatetime(ctx context.Context) (domain.LatestDatetimeResponse, error)
		GetSummary(ctx context.Context) (domain.WeightSummaryResponse, error)
	}

	weightService struct {
		weightRepository WeightRepository
	}
)

func NewWeightService(weightRepository WeightRepository) WeightService {
	return &weightService{weightRepository: weightRepository}
}

// ImportCSV ingests a vendor body-composition export. Rows at or before the
// latest stored timestamp are skipped silently, which makes re-importing
// the same file idempotent. Row-level failures are counted and never abort
// the batch.
func (s *weightService) ImportCSV(ctx context.Context, file io.Reader) (domain.ImportWeightCSVResponse, error) {
	reader := bufio.NewReader(file)
	if err := skipPreamble(reader); err != nil {
		return domain.ImportWeightCSVResponse{}, err
	}

	cr := csv.NewReader(reader)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	index, err := readHeader(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ImportWeightCSVResponse{Message: domain.MessageSuccessImportCSV}, nil
		}
		return domain.ImportWeightCSVResponse{}, err
	}

	// The watermark is read once for the whole batch. Concurrent importers
	// can both pass this check for the same row; the timestamp upsert keeps
	// the outcome idempotent.
	latest, err := s.weightRepository.GetLatestMeasurement(ctx)
	if err != nil {
		return domain.ImportWeightCSVResponse{}, err
	}

	imported, errored := 0, 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("skipping unreadable csv row: %v", err)
			errored++
			continue
		}

		field := fieldReader(record, index)
		measuredAt, err := time.Parse(measuredAtLayout, field(fieldDateTime))
		if err != nil {
			log.Printf("skipping csv row with invalid timestamp %q: %v", field(fieldDateTime), err)
			errored++
			continue
		}

		if latest != nil && !measuredAt.After(latest.MeasuredAt) {
			continue
		}

		measurement, ok := parseMetrics(field, measuredAt)
		if !ok {
			errored++
			continue
		}

		if err := s.weightRepository.UpsertMeasurement(ctx, measurement); err != nil {
			log.Printf("failed to upsert measurement at %s: %v", measurement.MeasuredAt, err)
			errored++
			continue
		}
		imported++
	}

	return domain.ImportWeightCSVResponse{
		Message:       domain.MessageSuccessImportCSV,
		ImportedCount: imported,
		ErrorCount:    errored,
	}, nil
}

func skipPreamble(reader *bufio.Reader) error {
	for i := 0; i < preambleLines; i++ {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			if line != "" {
				// final preamble line without a trailing newline
				continue
			}
			return domain.ErrTruncatedFile
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readHeader(cr *csv.Reader) (map[string]int, error) {
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return index, nil
}

func fieldReader(record []string, index map[string]int) func(string) string {
	return func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
}

func parseMetrics(field func(string) string, measuredAt time.Time) (*entities.WeightMeasurement, bool) {
	// Weight has no default: a blank or unparsable weight fails the row.
	weightValue, err := strconv.ParseFloat(field(fieldWeight), 64)
	if err != nil {
		log.Printf("skipping csv row at %s with invalid weight %q", field(fieldDateTime), field(fieldWeight))
		return nil, false
	}

	return &entities.WeightMeasurement{
		ID:         uuid.New(),
		MeasuredAt: measuredAt,
		Weight:     weightValue,
		BoneMass:   parseFloatOrZero(field(fieldBoneMass)),
		BodyFat:    parseFloatOrZero(field(fieldBodyFat)),
		BodyWater:  parseFloatOrZero(field(fieldBodyWater)),
		MuscleMass: parseFloatOrZero(field(fieldMuscleMass)),
		BMI:        parseFloatOrZero(field(fieldBMI)),
	}, true
}

func parseFloatOrZero(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

func (s *weightService) GetMeasurements(ctx context.Context) ([]domain.WeightMeasurementResponse, error) {
	measurements, err := s.weightRepository.GetAllMeasurements(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.WeightMeasurementResponse, 0, len(measurements))
	for _, m := range measurements {
		response = append(response, domain.WeightMeasurementResponse{
			MeasuredAt: m.MeasuredAt,
			Weight:     m.Weight,
			BoneMass:   m.BoneMass,
			BodyFat:    m.BodyFat,
			BodyWater:  m.BodyWater,
			MuscleMass: m.MuscleMass,
			BMI:        m.BMI,
		})
	}
	return response, nil
}

func (s *weightService) GetLatestDatetime(ctx context.Context) (domain.LatestDatetimeResponse, error) {
	latest, err := s.weightRepository.GetLatestMeasurement(ctx)
	if err != nil {
		return domain.LatestDatetimeResponse{}, err
	}
	if latest == nil {
		return domain.LatestDatetimeResponse{}, nil
	}
	return domain.LatestDatetimeResponse{LatestDatetime: &latest.MeasuredAt}, nil
}

// metricAccumulator tracks sum/min/max for one metric. The min seed is an
// improbably high value so the first real reading always replaces it; the
// max seed is zero for the same reason.
type metricAccumulator struct {
	sum, min, max float64
}

func newMetricAccumulator() metricAccumulator {
	return metricAccumulator{min: 10000, max: 0}
}

func (a *metricAccumulator) add(value float64) {
	a.sum += value
	if value < a.min {
		a.min = value
	}
	if value > a.max {
		a.max = value
	}
}

func (a *metricAccumulator) summary(count int) domain.MetricSummary {
	return domain.MetricSummary{
		Avg: a.sum / float64(count),
		Min: a.min,
		Max: a.max,
	}
}

// GetSummary computes per-metric min/max/average over all measurements in
// one pass. Metrics that defaulted to 0 on import contribute 0 to the sum
// and can pull the average down; that follows directly from the import
// default and is not corrected here.
func (s *weightService) GetSummary(ctx context.Context) (domain.WeightSummaryResponse, error) {
	measurements, err := s.weightRepository.GetAllMeasurements(ctx)
	if err != nil {
		return domain.WeightSummaryResponse{}, err
	}
	if len(measurements) == 0 {
		return domain.WeightSummaryResponse{}, domain.ErrNoMeasurements
	}

	weightAcc := newMetricAccumulator()
	boneAcc := newMetricAccumulator()
	fatAcc := newMetricAccumulator()
	waterAcc := newMetricAccumulator()
	muscleAcc := newMetricAccumulator()
	bmiAcc := newMetricAccumulator()

	for _, m := range measurements {
		weightAcc.add(m.Weight)
		boneAcc.add(m.BoneMass)
		fatAcc.add(m.BodyFat)
		waterAcc.add(m.BodyWater)
		muscleAcc.add(m.MuscleMass)
		bmiAcc.add(m.BMI)
	}

	count := len(measurements)
	return domain.WeightSummaryResponse{
		Weight:     weightAcc.summary(count),
		BoneMass:   boneAcc.summary(count),
		BodyFat:    fatAcc.summary(count),
		BodyWater:  waterAcc.summary(count),
		MuscleMass: muscleAcc.summary(count),
		BMI:        bmiAcc.summary(count),
	}, nil
}
