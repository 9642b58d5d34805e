package sanitation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"genoscope/api/models"
	"genoscope/api/models/constants"
	ds "genoscope/api/models/constants/dataset"
	"genoscope/api/repositories/flatfile"
	"genoscope/api/services"
	"genoscope/api/services/datasets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setUpSanitation(t *testing.T) (*SanitationService, *services.AuthnService, *datasets.Store) {
	dir := t.TempDir()
	paths := map[constants.DatasetName]string{
		ds.Clinvar: filepath.Join(dir, "clinvar.csv"),
		ds.Ibd:     filepath.Join(dir, "ibd.csv"),
	}
	require.NoError(t, os.WriteFile(paths[ds.Clinvar], []byte("rsid,gene\nrs1,BRCA1\nrs2,BRCA2\n"), 0644))

	users, err := flatfile.NewCredentialRepository(filepath.Join(dir, "users.csv"))
	require.NoError(t, err)

	cfg := models.DefaultConfig()
	cfg.AuthX.BcryptCost = bcrypt.MinCost

	authn := services.NewAuthnService(&cfg, users, zap.NewNop())
	store := datasets.NewStore(paths, zap.NewNop())

	return NewSanitationService(authn, store, zap.NewNop()), authn, store
}

func TestReportDatasets(t *testing.T) {
	ss, _, store := setUpSanitation(t)

	assert.Empty(t, ss.ReportDatasets())

	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, map[constants.DatasetName]int{ds.Clinvar: 2, ds.Ibd: 0}, ss.ReportDatasets())
}

func TestSweepSessions(t *testing.T) {
	ss, authn, _ := setUpSanitation(t)

	require.NoError(t, authn.Signup("kim@example.org", "pw"))
	session, err := authn.Login("kim@example.org", "pw")
	require.NoError(t, err)

	// a fresh session survives the sweep
	assert.Equal(t, 0, ss.SweepSessions())
	_, err = authn.Authenticate(session.Token)
	assert.NoError(t, err)
}

func TestInit(t *testing.T) {
	ss, _, _ := setUpSanitation(t)

	ss.Init()
	defer ss.Close()
	assert.True(t, ss.Initialized)

	scheduler := ss.scheduler
	ss.Init()
	assert.Same(t, scheduler, ss.scheduler)
}
