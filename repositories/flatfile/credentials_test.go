package flatfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepository(t *testing.T) {
	t.Run("should treat a missing users file as empty", func(t *testing.T) {
		repo, err := NewCredentialRepository(filepath.Join(t.TempDir(), "users.csv"))
		require.NoError(t, err)
		assert.Equal(t, 0, repo.Count())
	})

	t.Run("should persist appended credentials across reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")

		repo, err := NewCredentialRepository(path)
		require.NoError(t, err)

		added, err := repo.Append(Credential{Email: " Alice@Example.org ", PasswordHash: "hash-a"})
		require.NoError(t, err)
		assert.True(t, added)

		added, err = repo.Append(Credential{Email: "bob@example.org", PasswordHash: "hash-b"})
		require.NoError(t, err)
		assert.True(t, added)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "email,password\nalice@example.org,hash-a\nbob@example.org,hash-b\n", string(content))

		reloaded, err := NewCredentialRepository(path)
		require.NoError(t, err)
		assert.Equal(t, 2, reloaded.Count())

		c, ok := reloaded.Find("ALICE@example.org")
		require.True(t, ok)
		assert.Equal(t, "hash-a", c.PasswordHash)
	})

	t.Run("should refuse an email that is already registered", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")
		repo, err := NewCredentialRepository(path)
		require.NoError(t, err)

		_, err = repo.Append(Credential{Email: "carol@example.org", PasswordHash: "first"})
		require.NoError(t, err)

		added, err := repo.Append(Credential{Email: "Carol@Example.org", PasswordHash: "second"})
		require.NoError(t, err)
		assert.False(t, added)

		c, _ := repo.Find("carol@example.org")
		assert.Equal(t, "first", c.PasswordHash)
		assert.Equal(t, 1, repo.Count())
	})
}
