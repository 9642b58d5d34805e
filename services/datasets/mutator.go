package datasets

import (
	"strings"

	"genoscope/api/models"
	"genoscope/api/models/conditions"
	"genoscope/api/models/constants"
	ds "genoscope/api/models/constants/dataset"
	rf "genoscope/api/models/constants/record-field"
	"genoscope/api/repositories/flatfile"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// DecodeSubmission turns a free-form /add-data payload into the
// typed submission of the given dataset kind
func DecodeSubmission(name constants.DatasetName, data map[string]interface{}) (models.Submission, error) {
	var target models.Submission
	switch name {
	case ds.Clinvar:
		target = &models.ClinvarSubmission{}
	case ds.Ibd:
		target = &models.RiskSubmission{}
	default:
		return nil, conditions.ErrInvalidDataset
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(data); err != nil {
		return nil, &conditions.InvalidSubmissionError{Err: err}
	}

	return target, nil
}

// Validate fails with a *conditions.MissingFieldsError naming every
// required field that is absent or blank
func Validate(s models.Submission) error {
	missing := []string{}
	for _, f := range s.Fields() {
		if f.Required && strings.TrimSpace(f.Value) == "" {
			missing = append(missing, string(f.Field))
		}
	}

	if len(missing) > 0 {
		return &conditions.MissingFieldsError{Fields: missing}
	}
	return nil
}

// Append validates the payload, writes it to the backing file and then
// to memory. Nothing is kept in memory when the file write fails.
func (s *Store) Append(name constants.DatasetName, data map[string]interface{}) (models.Record, error) {
	// an append racing the initial load would be overwritten by it
	select {
	case <-s.ready:
	default:
		return nil, conditions.ErrDatasetsNotReady
	}

	submission, err := DecodeSubmission(name, data)
	if err != nil {
		return nil, err
	}
	if err := Validate(submission); err != nil {
		return nil, err
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	d := s.datasets[name]
	schema := d.Schema
	if schema.IsEmpty() {
		schema = models.CanonicalSchema(models.SubmissionFieldNames(submission))
	}

	record := make(models.Record, len(schema.Header))
	for _, column := range schema.Header {
		record[column] = ""
	}
	for _, f := range submission.Fields() {
		column, ok := schema.Column(f.Field)
		if !ok {
			if f.Value != "" {
				s.logger.Warn("dropping submitted field without a matching column",
					zap.String("dataset", string(name)),
					zap.String("field", string(f.Field)))
			}
			continue
		}
		record[column] = strings.TrimSpace(f.Value)
	}

	if err := flatfile.AppendRecord(s.paths[name], schema, record); err != nil {
		return nil, err
	}

	d.Schema = schema
	d.Records = append(d.Records, record)

	s.logger.Info("record appended",
		zap.String("dataset", string(name)),
		zap.String("rsid", schema.Value(record, rf.RsId)),
		zap.Int("records", len(d.Records)))

	return record, nil
}
