package datasets

import (
	"context"
	"fmt"
	"sync"

	"genoscope/api/models"
	"genoscope/api/models/conditions"
	"genoscope/api/models/constants"
	ds "genoscope/api/models/constants/dataset"
	"genoscope/api/repositories/flatfile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type (
	// Store owns the in-memory datasets. Reads wait on the
	// initialization barrier, the record mutator is the only writer.
	Store struct {
		paths    map[constants.DatasetName]string
		datasets map[constants.DatasetName]*models.Dataset
		mux      sync.RWMutex

		ready    chan struct{}
		loadOnce sync.Once
		loadErr  error

		logger *zap.Logger
	}
)

func NewStore(paths map[constants.DatasetName]string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	datasets := map[constants.DatasetName]*models.Dataset{}
	for _, name := range ds.All() {
		datasets[name] = &models.Dataset{Name: name, Records: []models.Record{}}
	}

	return &Store{
		paths:    paths,
		datasets: datasets,
		ready:    make(chan struct{}),
		logger:   logger,
	}
}

// Load reads every backing file, concurrently, then releases the
// initialization barrier. Only the first call does any work.
func (s *Store) Load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		defer close(s.ready)

		loaded := make([]*models.Dataset, len(ds.All()))
		g, _ := errgroup.WithContext(ctx)

		for i, name := range ds.All() {
			i, name := i, name
			g.Go(func() error {
				path := s.paths[name]
				schema, records, err := flatfile.ReadDataset(path)
				if err != nil {
					return fmt.Errorf("loading dataset %s: %w", name, err)
				}
				if schema.IsEmpty() {
					s.logger.Warn("dataset file missing or empty",
						zap.String("dataset", string(name)),
						zap.String("path", path))
				}

				loaded[i] = &models.Dataset{Name: name, Schema: schema, Records: records}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			s.loadErr = err
			return
		}

		s.mux.Lock()
		for _, d := range loaded {
			s.datasets[d.Name] = d
			s.logger.Info("dataset loaded",
				zap.String("dataset", string(d.Name)),
				zap.Int("records", len(d.Records)),
				zap.Strings("columns", d.Schema.Header))
		}
		s.mux.Unlock()
	})

	return s.loadErr
}

// Ready is closed once Load has finished, successfully or not
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// WaitUntilReady blocks until the datasets are loaded or ctx is done.
// A completed load wins over a ctx that is already done.
func (s *Store) WaitUntilReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.loadErr
	default:
	}

	select {
	case <-s.ready:
		return s.loadErr
	case <-ctx.Done():
		return conditions.ErrDatasetsNotReady
	}
}

// snapshot returns the dataset's schema and its records as of now.
// The returned slice is capped so later appends never alias it.
func (s *Store) snapshot(name constants.DatasetName) (models.Schema, []models.Record, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	d, ok := s.datasets[name]
	if !ok {
		return models.Schema{}, nil, conditions.ErrInvalidDataset
	}

	return d.Schema, d.Records[:len(d.Records):len(d.Records)], nil
}

func (s *Store) Schema(name constants.DatasetName) (models.Schema, error) {
	schema, _, err := s.snapshot(name)
	return schema, err
}

func (s *Store) Count(name constants.DatasetName) (int, error) {
	_, records, err := s.snapshot(name)
	return len(records), err
}
