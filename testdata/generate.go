// Command generate converts a county demographics CSV into the parquet layout
// countyq reads.
//
//	go run ./testdata/generate.go testdata/counties.csv counties.parquet
package main

import (
	"log"
	"os"

	"github.com/vegasq/countyq/reader"
)

func main() {
	in, out := "counties.csv", "counties.parquet"
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	ds, err := reader.ReadFile(in, reader.Options{})
	if err != nil {
		log.Fatal(err)
	}

	file, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if err := reader.WriteParquet(file, ds.Records); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated %s with %d counties (fingerprint %s)", out, len(ds.Records),
		reader.FormatFingerprint(reader.Fingerprint(ds.Records)))
}
