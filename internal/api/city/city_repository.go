package city

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/FACorreiaa/green-city-pages/internal/types"
)

var _ Repository = (*CSVCityRepository)(nil)

type Repository interface {
	// LoadDataset reads every row of the city dataset in file order.
	// Returns ErrDatasetUnavailable when the file cannot be opened or read and
	// ErrDatasetMalformed when it is not valid CSV.
	LoadDataset(ctx context.Context) ([]types.RawCityRecord, error)
}

// CSVCityRepository reads the dataset from a header-delimited CSV file on
// every call. The file is never written.
type CSVCityRepository struct {
	logger *slog.Logger
	path   string
}

func NewCityRepository(path string, logger *slog.Logger) *CSVCityRepository {
	return &CSVCityRepository{
		logger: logger,
		path:   path,
	}
}

func (r *CSVCityRepository) LoadDataset(ctx context.Context) ([]types.RawCityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrDatasetUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Rows are not validated against the header width.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, r.readError(err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var records []types.RawCityRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, r.readError(err)
		}

		record := make(types.RawCityRecord, len(header))
		for i, column := range header {
			if i >= len(row) {
				break
			}
			record[column] = row[i]
		}
		records = append(records, record)
	}

	r.logger.DebugContext(ctx, "Loaded city dataset",
		slog.String("path", r.path),
		slog.Int("rows", len(records)))
	return records, nil
}

func (r *CSVCityRepository) readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %s: %w", types.ErrDatasetMalformed, r.path, err)
	}
	return fmt.Errorf("%w: %s: %w", types.ErrDatasetUnavailable, r.path, err)
}
