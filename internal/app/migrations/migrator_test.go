package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	m := NewMigrator(nil, zerolog.Nop())
	files, err := Versions(m.files)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
}

func TestVersionsOrdering(t *testing.T) {
	files := fstest.MapFS{
		"010_later.sql":  {Data: []byte("SELECT 1;")},
		"002_second.sql": {Data: []byte("SELECT 1;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("notes")},
	}
	names, err := Versions(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_first.sql", "002_second.sql", "010_later.sql"}, names)
	assert.Equal(t, "010", versionOf(names[2]))
}
