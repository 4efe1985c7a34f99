package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "recruit.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  from-file\n"), 0o600))
	emptyFile := filepath.Join(dir, "empty.key")
	require.NoError(t, os.WriteFile(emptyFile, []byte("\n"), 0o600))

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr error
	}{
		{name: "inline value", src: Source{Name: "recruit key", Value: " inline "}, want: "inline"},
		{name: "file wins over value", src: Source{Name: "recruit key", Value: "inline", File: keyFile}, want: "from-file"},
		{name: "nothing configured", src: Source{Name: "recruit key"}, wantErr: ErrNotConfigured},
		{name: "empty file", src: Source{Name: "recruit key", File: emptyFile}, wantErr: ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(tt.src)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(Source{Name: "training key", File: filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotConfigured))
	assert.Contains(t, err.Error(), "training key")
}

func TestLoadOptional(t *testing.T) {
	t.Parallel()

	got, err := LoadOptional(Source{Name: "training key"})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = LoadOptional(Source{Name: "training key", File: filepath.Join(t.TempDir(), "absent")})
	assert.Error(t, err)
}
