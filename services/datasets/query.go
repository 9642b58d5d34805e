package datasets

import (
	"strings"

	"genoscope/api/models"
	"genoscope/api/models/constants"
	rf "genoscope/api/models/constants/record-field"

	. "github.com/ahmetb/go-linq"
)

/*
	Query engine: full scans over a dataset snapshot.
	An unknown dataset fails with conditions.ErrInvalidDataset,
	no match is an empty (non-nil) slice.
*/

// All returns every record, in load then append order
func (s *Store) All(name constants.DatasetName) ([]models.Record, error) {
	_, records, err := s.snapshot(name)
	if err != nil {
		return nil, err
	}

	all := make([]models.Record, len(records))
	copy(all, records)
	return all, nil
}

// ByIdentifier matches rsIDs case-insensitively after trimming both sides
func (s *Store) ByIdentifier(name constants.DatasetName, rsId string) ([]models.Record, error) {
	wanted := models.NormalizeIdentifier(rsId)
	return s.where(name, func(schema models.Schema, r models.Record) bool {
		return schema.Identifier(r) == wanted
	})
}

// ByGene matches the whole Gene cell case-insensitively. Multi-gene
// cells ("NOD2, CARD15") are not split here, unlike the PRS gene lookup.
func (s *Store) ByGene(name constants.DatasetName, gene string) ([]models.Record, error) {
	wanted := strings.TrimSpace(gene)
	return s.where(name, func(schema models.Schema, r models.Record) bool {
		return strings.EqualFold(schema.Value(r, rf.Gene), wanted)
	})
}

func (s *Store) ByDisease(name constants.DatasetName, disease string) ([]models.Record, error) {
	wanted := strings.TrimSpace(disease)
	return s.where(name, func(schema models.Schema, r models.Record) bool {
		return strings.EqualFold(schema.Value(r, rf.Phenotype), wanted)
	})
}

// DistinctGenes counts the distinct (case-insensitive) Gene cells of a dataset
func (s *Store) DistinctGenes(name constants.DatasetName) (int, error) {
	schema, records, err := s.snapshot(name)
	if err != nil {
		return 0, err
	}

	return From(records).
		SelectT(func(r models.Record) string {
			return strings.ToLower(strings.TrimSpace(schema.Value(r, rf.Gene)))
		}).
		WhereT(func(gene string) bool { return gene != "" }).
		Distinct().
		Count(), nil
}

func (s *Store) where(name constants.DatasetName, predicate func(models.Schema, models.Record) bool) ([]models.Record, error) {
	schema, records, err := s.snapshot(name)
	if err != nil {
		return nil, err
	}

	matches := []models.Record{}
	From(records).
		WhereT(func(r models.Record) bool { return predicate(schema, r) }).
		ToSlice(&matches)

	if matches == nil {
		matches = []models.Record{}
	}
	return matches, nil
}
