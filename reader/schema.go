package reader

import (
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/countyq/schema"
)

// ColumnInfo describes one leaf column of a parquet file.
type ColumnInfo struct {
	Name         string `json:"name"`
	PhysicalType string `json:"physical_type"`
	Optional     bool   `json:"optional"`
}

// recordSchema is the parquet schema derived from schema.Record.
var recordSchema = parquet.SchemaOf(schema.Record{})

// Columns lists the top-level leaf columns of the file.
func (r *Reader) Columns() []ColumnInfo {
	var infos []ColumnInfo
	for _, field := range r.pqFile.Schema().Fields() {
		if len(field.Fields()) > 0 {
			continue
		}
		infos = append(infos, ColumnInfo{
			Name:         field.Name(),
			PhysicalType: getPhysicalType(field),
			Optional:     field.Optional(),
		})
	}
	return infos
}

// MissingColumns returns the Record columns the file does not provide. Those
// fields read as zero values.
func (r *Reader) MissingColumns() []string {
	have := make(map[string]bool)
	for _, c := range r.Columns() {
		have[c.Name] = true
	}

	var missing []string
	for _, field := range recordSchema.Fields() {
		if !have[field.Name()] {
			missing = append(missing, field.Name())
		}
	}
	return missing
}

// getPhysicalType returns the physical type name of a Parquet field.
func getPhysicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
