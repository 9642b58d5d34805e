package sanitation

import (
	"time"

	"genoscope/api/models/constants"
	ds "genoscope/api/models/constants/dataset"
	"genoscope/api/services"
	"genoscope/api/services/datasets"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const (
	sessionSweepMinutes  = 5
	datasetReportMinutes = 60
)

type (
	SanitationService struct {
		Initialized bool

		authn     *services.AuthnService
		store     *datasets.Store
		scheduler *gocron.Scheduler
		logger    *zap.Logger
	}
)

func NewSanitationService(authn *services.AuthnService, store *datasets.Store, logger *zap.Logger) *SanitationService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SanitationService{
		Initialized: false,
		authn:       authn,
		store:       store,
		logger:      logger,
	}
}

func (ss *SanitationService) Init() {
	// initialization if necessary
	if ss.Initialized {
		return
	}

	// - periodically run through a series of steps
	//   to keep the in-memory state "sanitary" ; i.e.
	//   - dropping expired login sessions
	//   - reporting dataset sizes once loaded
	ss.scheduler = gocron.NewScheduler(time.UTC)

	ss.scheduler.Every(sessionSweepMinutes).Minutes().Do(ss.SweepSessions)
	ss.scheduler.Every(datasetReportMinutes).Minutes().Do(ss.ReportDatasets)

	ss.scheduler.StartAsync()

	ss.Initialized = true
	ss.logger.Info("sanitation service initialized")
}

func (ss *SanitationService) Close() {
	if ss.scheduler != nil {
		ss.scheduler.Stop()
	}
}

// SweepSessions drops expired sessions and returns how many went
func (ss *SanitationService) SweepSessions() int {
	swept := ss.authn.SweepExpiredSessions()
	if swept > 0 {
		ss.logger.Info("swept expired sessions", zap.Int("count", swept))
	}
	return swept
}

// ReportDatasets logs each dataset's record count; a no-op until
// the initial load has completed
func (ss *SanitationService) ReportDatasets() map[constants.DatasetName]int {
	counts := map[constants.DatasetName]int{}

	select {
	case <-ss.store.Ready():
	default:
		return counts
	}

	for _, name := range ds.All() {
		count, err := ss.store.Count(name)
		if err != nil {
			continue
		}
		counts[name] = count
		ss.logger.Info("dataset size",
			zap.String("dataset", string(name)),
			zap.Int("records", count))
	}
	return counts
}
