package postgres

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createTableRe = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)
	tenantColRe   = regexp.MustCompile(`(?m)^\s+tenant_id\s+TEXT NOT NULL(.*)$`)
)

func TestMigraciones_TablasConFKATenant(t *testing.T) {
	files, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	tables := 0
	for _, name := range files {
		body, err := fs.ReadFile(migrationFiles, name)
		require.NoError(t, err)
		for _, m := range createTableRe.FindAllStringSubmatch(string(body), -1) {
			table, cols := m[1], m[2]
			if table == "tenants" {
				continue
			}
			tables++
			col := tenantColRe.FindStringSubmatch(cols)
			require.NotNil(t, col, "%s sin tenant_id", table)
			assert.Contains(t, col[1], "REFERENCES tenants (id)", table)
		}
	}
	assert.Equal(t, 8, tables)
}
