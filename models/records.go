package models

import (
	"genoscope/api/models/constants"
	rf "genoscope/api/models/constants/record-field"
	"strings"
)

// Record is one row of a dataset, keyed by the dataset's header columns
type Record map[string]string

type Dataset struct {
	Name    constants.DatasetName
	Schema  Schema
	Records []Record
}

// Schema holds a dataset file's header row along with
// the header column each known record field resolved to
type Schema struct {
	Header    []string
	Delimiter rune
	columns   map[constants.RecordField]string
}

func NewSchema(header []string) Schema {
	s := Schema{
		Header:    header,
		Delimiter: ',',
		columns:   map[constants.RecordField]string{},
	}

	for _, field := range rf.All() {
		for _, column := range header {
			if rf.Matches(field, column) {
				s.columns[field] = column
				break
			}
		}
	}

	return s
}

// CanonicalSchema is used for datasets whose backing file has no header yet
func CanonicalSchema(fields []constants.RecordField) Schema {
	header := make([]string, 0, len(fields))
	for _, f := range fields {
		header = append(header, string(f))
	}
	return NewSchema(header)
}

func (s Schema) IsEmpty() bool {
	return len(s.Header) == 0
}

func (s Schema) Column(field constants.RecordField) (string, bool) {
	column, ok := s.columns[field]
	return column, ok
}

// Value returns the record's value for a field, "" when the
// dataset has no such column
func (s Schema) Value(r Record, field constants.RecordField) string {
	column, ok := s.columns[field]
	if !ok {
		return ""
	}
	return r[column]
}

// Identifier is the record's rsID, trimmed and lowercased for comparisons
func (s Schema) Identifier(r Record) string {
	return NormalizeIdentifier(s.Value(r, rf.RsId))
}

func NormalizeIdentifier(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
