package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/countyq/schema"
)

// Dataset is the result of ingesting one input file.
type Dataset struct {
	// Records in input order.
	Records schema.WorkingSet

	// Truncated is set when ingestion stopped at Options.MaxRecords.
	Truncated bool

	// Skipped counts rows the CSV decoder rejected.
	Skipped int

	// Coerced counts numeric cells that did not convert completely.
	Coerced int
}

// Reader reads county records from a parquet file.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
	opts   Options
}

// NewReader opens path as a parquet file of county records.
//
// Columns are matched to Record fields by the names in the Record parquet
// tags; missing columns read as zero values.
//
// Example:
//
//	r, err := NewReader("counties.parquet", Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(path string, opts Options) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
		opts:   opts,
	}, nil
}

// ReadAll reads every row into memory, honoring Options.MaxRecords and
// Options.SkipFirstRecord.
func (r *Reader) ReadAll() (*Dataset, error) {
	rows := parquet.NewGenericReader[schema.Record](r.pqFile)
	defer func() { _ = rows.Close() }()

	ds := &Dataset{}
	skipFirst := r.opts.SkipFirstRecord
	buf := make([]schema.Record, 128)

	for {
		n, err := rows.Read(buf)
		for _, rec := range buf[:n] {
			if skipFirst {
				skipFirst = false
				continue
			}
			if r.opts.MaxRecords > 0 && len(ds.Records) >= r.opts.MaxRecords {
				ds.Truncated = true
				return ds, nil
			}
			ds.Records = append(ds.Records, rec)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
	}

	return ds, nil
}

// NumRows returns the row count recorded in the file metadata.
func (r *Reader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// Close closes the parquet reader and releases associated resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadFile ingests path, choosing the format by extension: ".parquet" files
// are read as parquet, anything else as CSV.
func ReadFile(path string, opts Options) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		r, err := NewReader(path, opts)
		if err != nil {
			return nil, err
		}
		opts.logger().Debug("parquet file opened", "path", path, "rows", r.NumRows())
		if missing := r.MissingColumns(); len(missing) > 0 {
			opts.logger().Warn("parquet file lacks county columns; they read as zero",
				"path", path,
				"missing", missing,
			)
		}
		ds, readErr := r.ReadAll()
		closeErr := r.Close()
		if readErr != nil {
			return nil, readErr
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
		return ds, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, opts)
}

// WriteParquet writes records to w as a parquet file with the Record schema.
// It is used to convert CSV datasets and to build fixtures.
func WriteParquet(w io.Writer, records []schema.Record) error {
	writer := parquet.NewGenericWriter[schema.Record](w)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}
