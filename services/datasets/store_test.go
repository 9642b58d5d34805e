package datasets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"genoscope/api/models/conditions"
	"genoscope/api/models/constants"
	ds "genoscope/api/models/constants/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	clinvarFixture = "rsid,gene,phenotype,clinical_significance,chromosome\n" +
		"rs123,BRCA1,Breast cancer,Pathogenic,17\n" +
		"rs456,BRCA2,Ovarian cancer,Likely pathogenic,13\n" +
		"rs789,brca1,breast cancer,Benign,17\n"

	ibdFixture = "rsID,Gene,Disease,Risk Allele,orValue,beta\n" +
		"rs100,NOD2,Crohn's disease,T,,0.3\n" +
		"rs200,\"IL23R, JAK2\",Ulcerative colitis,A,2.0,\n" +
		"rs300,ATG16L1,Crohn's disease,G,,\n"
)

// setUpStore writes the fixtures into a temp dir and returns
// an unloaded store pointing at them
func setUpStore(t *testing.T, clinvar string, ibd string) (*Store, map[constants.DatasetName]string) {
	dir := t.TempDir()
	paths := map[constants.DatasetName]string{
		ds.Clinvar: filepath.Join(dir, "clinvar.csv"),
		ds.Ibd:     filepath.Join(dir, "ibd.csv"),
	}

	if clinvar != "" {
		require.NoError(t, os.WriteFile(paths[ds.Clinvar], []byte(clinvar), 0644))
	}
	if ibd != "" {
		require.NoError(t, os.WriteFile(paths[ds.Ibd], []byte(ibd), 0644))
	}

	return NewStore(paths, zap.NewNop()), paths
}

func setUpLoadedStore(t *testing.T) (*Store, map[constants.DatasetName]string) {
	store, paths := setUpStore(t, clinvarFixture, ibdFixture)
	require.NoError(t, store.Load(context.Background()))
	return store, paths
}

func TestStoreLoad(t *testing.T) {
	t.Run("should hold the barrier until loading completes", func(t *testing.T) {
		store, _ := setUpStore(t, clinvarFixture, ibdFixture)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, store.WaitUntilReady(ctx), conditions.ErrDatasetsNotReady)

		require.NoError(t, store.Load(context.Background()))

		select {
		case <-store.Ready():
		default:
			t.Fatal("ready channel should be closed after Load")
		}
		assert.NoError(t, store.WaitUntilReady(context.Background()))
	})

	t.Run("should report a loaded store as ready even when the wait is cancelled", func(t *testing.T) {
		store, _ := setUpLoadedStore(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		for i := 0; i < 100; i++ {
			require.NoError(t, store.WaitUntilReady(ctx))
		}
	})

	t.Run("should load both datasets in file order", func(t *testing.T) {
		store, _ := setUpLoadedStore(t)

		clinvar, err := store.All(ds.Clinvar)
		require.NoError(t, err)
		require.Len(t, clinvar, 3)
		assert.Equal(t, "rs123", clinvar[0]["rsid"])
		assert.Equal(t, "rs789", clinvar[2]["rsid"])

		count, err := store.Count(ds.Ibd)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("should only load once", func(t *testing.T) {
		store, paths := setUpLoadedStore(t)

		require.NoError(t, os.WriteFile(paths[ds.Clinvar], []byte("rsid\nrs1\n"), 0644))
		require.NoError(t, store.Load(context.Background()))

		count, err := store.Count(ds.Clinvar)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("should start empty when a file is missing", func(t *testing.T) {
		store, _ := setUpStore(t, "", ibdFixture)
		require.NoError(t, store.Load(context.Background()))

		records, err := store.All(ds.Clinvar)
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("should reject unknown datasets", func(t *testing.T) {
		store, _ := setUpLoadedStore(t)

		_, err := store.All(constants.DatasetName("gnomad"))
		assert.ErrorIs(t, err, conditions.ErrInvalidDataset)
	})
}
