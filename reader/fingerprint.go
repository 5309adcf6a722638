package reader

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/vegasq/countyq/schema"
)

// Fingerprint hashes the contents of records in order. Two ingestions of the
// same bytes with the same Options produce the same fingerprint. Source line
// numbers are not part of the hash.
func Fingerprint(records []schema.Record) uint64 {
	h := xxh3.New()
	buf := make([]byte, 0, 128)

	for _, r := range records {
		buf = buf[:0]
		buf = binary.AppendUvarint(buf, uint64(len(r.County)))
		buf = append(buf, r.County...)
		buf = binary.AppendUvarint(buf, uint64(len(r.State)))
		buf = append(buf, r.State...)
		for _, f := range []float32{
			r.EducationHighSchoolOrHigher,
			r.EducationBachelorsOrHigher,
			r.EthnicityAmericanIndian,
			r.EthnicityAsian,
			r.EthnicityBlack,
			r.EthnicityHispanic,
			r.EthnicityNativeHawaiian,
			r.EthnicityTwoOrMoreRaces,
			r.EthnicityWhite,
			r.EthnicityWhiteNotHispanic,
			r.PersonsBelowPovertyLevel,
		} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
		for _, n := range []int32{r.MedianHouseholdIncome, r.PerCapitaIncome, r.Population2014} {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(n))
		}
		_, _ = h.Write(buf)
	}

	return h.Sum64()
}

// FormatFingerprint renders a fingerprint as 16 hex digits.
func FormatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
