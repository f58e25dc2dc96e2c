package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `vehicle_types:
  - {id: x, name: Type X, capacity: 10, max_count: 3}
  - {id: y, name: Type Y, capacity: 15, max_count: 2}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestRunPrintsTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-passengers", "22", "-catalog", writeCatalog(t)}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Type Y")
	assert.Contains(t, stdout.String(), "passengers=22 seats=25 leftover=3 vehicles=2")
}

func TestRunPrintsJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-passengers", "60", "-workers", "2", "-json", "-catalog", writeCatalog(t)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var out jsonResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, []int{3, 2}, out.Assignment)
	assert.Equal(t, 0, out.Leftover)
	assert.Equal(t, 5, out.VehiclesUsed)
}

func TestRunExitCodes(t *testing.T) {
	path := writeCatalog(t)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run([]string{"-passengers", "1000", "-catalog", path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "infeasible")

	assert.Equal(t, 2, run([]string{"-passengers", "0", "-catalog", path}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-passengers", "5", "-catalog", filepath.Join(t.TempDir(), "none.yaml")}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-bogus"}, &stdout, &stderr))
}
