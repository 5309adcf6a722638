// Package reader ingests county demographics datasets.
//
// CSV input is mapped by column position (0 county, 1 state, 5 bachelors,
// 6 high school, 11-18 ethnicity shares, 25-26 incomes, 27 poverty, 38
// population); the header line is always skipped. Numeric cells convert
// leniently: the leading numeric prefix is used and a cell without one
// becomes zero. Parquet input carries the same fields as named columns.
//
// # Basic Usage
//
// Reading a CSV or parquet file (chosen by extension):
//
//	ds, err := reader.ReadFile("county_demographics.csv", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d entries loaded\n", len(ds.Records))
//
// # Record Cap
//
// Options.MaxRecords stops ingestion at a fixed count and sets
// Dataset.Truncated:
//
//	ds, err := reader.ReadFile(path, reader.Options{MaxRecords: reader.CompatMaxRecords})
//	if ds.Truncated {
//	    fmt.Fprintf(os.Stderr, "Error: Maximum county limit reached (%d counties)\n", reader.CompatMaxRecords)
//	}
//
// # Encodings
//
// CSV input is UTF-8 by default (a leading byte order mark is dropped);
// Options.Encoding selects "latin1" or "windows-1252" instead. Decoding uses
// golang.org/x/text.
//
// # Fingerprints
//
// Fingerprint hashes record contents with xxh3 so that repeated ingestions of
// the same file can be compared cheaply.
package reader
