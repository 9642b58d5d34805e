package flatfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"genoscope/api/models"

	"github.com/csimplestring/go-csv/detector"
)

// number of leading bytes handed to the delimiter detector
const delimiterSampleSize = 64 * 1024

// ReadDataset loads a delimited text file whose first row is the header.
// A missing or empty file yields an empty schema and no records.
func ReadDataset(path string) (models.Schema, []models.Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Schema{}, []models.Record{}, nil
		}
		return models.Schema{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(content)) == 0 {
		return models.Schema{}, []models.Record{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = DetermineDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return models.Schema{}, nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := []models.Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Schema{}, nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if isBlankRow(row) {
			continue
		}

		// keys are positional with the header; short rows are padded
		record := make(models.Record, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			} else {
				record[column] = ""
			}
		}
		records = append(records, record)
	}

	schema := models.NewSchema(header)
	schema.Delimiter = reader.Comma

	return schema, records, nil
}

// delimiters we accept from the detector, in order of preference
var supportedDelimiters = []rune{',', '\t', ';', '|'}

// DetermineDelimiter returns the most likely rune that delimits the
// values of a CSV-like payload, defaulting to a comma
func DetermineDelimiter(content []byte) rune {
	sample := content
	if len(sample) > delimiterSampleSize {
		sample = sample[:delimiterSampleSize]
	}

	d := detector.New()
	detected := d.DetectDelimiter(bytes.NewReader(sample), '"')

	for _, candidate := range supportedDelimiters {
		for _, delimiter := range detected {
			if len(delimiter) > 0 && rune(delimiter[0]) == candidate {
				return candidate
			}
		}
	}

	return ','
}

// AppendRecord writes one row at the end of the file, in header order,
// quoting every value. The header row is written first when the file
// is missing or holds nothing but whitespace, which is dropped.
func AppendRecord(path string, schema models.Schema, record models.Record) error {
	header := schema.Header
	delimiter := ","
	if schema.Delimiter != 0 {
		delimiter = string(schema.Delimiter)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	blank, err := isBlankFile(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var buf bytes.Buffer
	if blank {
		if err := f.Truncate(0); err != nil {
			return fmt.Errorf("truncating %s: %w", path, err)
		}
		buf.WriteString(quotedLine(header, delimiter))
	} else if !endsWithNewline(f, info.Size()) {
		buf.WriteString("\n")
	}

	values := make([]string, 0, len(header))
	for _, column := range header {
		values = append(values, record[column])
	}
	buf.WriteString(quotedLine(values, delimiter))

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seeking %s: %w", path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}

	return f.Sync()
}

func quotedLine(values []string, delimiter string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, `"`+strings.ReplaceAll(v, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, delimiter) + "\n"
}

// isBlankFile reports whether the file holds no more than a byte order
// mark and whitespace, the same content ReadDataset treats as empty
func isBlankFile(f *os.File) (bool, error) {
	chunk := make([]byte, 4096)
	var offset int64
	for {
		n, err := f.ReadAt(chunk, offset)
		data := chunk[:n]
		if offset == 0 {
			data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		}
		if len(bytes.TrimSpace(data)) > 0 {
			return false, nil
		}
		offset += int64(n)

		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func endsWithNewline(f *os.File, size int64) bool {
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return false
	}
	return last[0] == '\n'
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
