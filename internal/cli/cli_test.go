package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportedMap = filepath.Join("..", "..", "pkg", "mapdata", "testdata", "block-map-data.json")

// execute 通过根命令执行子命令，返回标准输出
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeMap(t *testing.T, name string, records []mapdata.Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, mapdata.WriteFile(path, records))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "blockmap", cmd.Use)

	for _, name := range []string{"info", "validate", "convert"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", exportedMap)
	require.NoError(t, err)
	assert.Contains(t, out, "blocks: 3")
	assert.Contains(t, out, "bounds: (-2, 0, 0) .. (0, 1, 1)")
	assert.Contains(t, out, "size:   3 x 2 x 2")

	empty := writeMap(t, "empty.json", nil)
	out, err = execute(t, "info", empty)
	require.NoError(t, err)
	assert.Contains(t, out, "bounds: empty")

	_, err = execute(t, "info", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", exportedMap)
	require.NoError(t, err)
	assert.Contains(t, out, "3 blocks, valid")

	bad := writeMap(t, "bad.yaml", []mapdata.Record{
		{Name: "a", Position: [3]float64{0, 0, 0}},
		{Name: "a", Position: [3]float64{0, 0, 0}},
	})
	out, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, mapdata.ErrInvalidMap)
	assert.Contains(t, out, "duplicate name")
	assert.Contains(t, out, "already occupied")

	_, err = execute(t, "validate")
	assert.Error(t, err, "missing argument should fail")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "map.yaml")

	out, err := execute(t, "convert", exportedMap, yamlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "converted 3 blocks")

	records, err := mapdata.ReadFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "block-9a1e", records[1].Name)

	_, err = execute(t, "convert", yamlPath, filepath.Join(dir, "map.txt"))
	assert.ErrorIs(t, err, mapdata.ErrUnknownFormat)
}

func TestConvertInvalid(t *testing.T) {
	bad := writeMap(t, "bad.json", []mapdata.Record{{Name: "", Position: [3]float64{0.5, 0, 0}}})
	target := filepath.Join(t.TempDir(), "out.yaml")

	_, err := execute(t, "convert", bad, target)
	require.Error(t, err)
	assert.ErrorIs(t, err, mapdata.ErrInvalidMap)
	assert.NoFileExists(t, target)

	_, err = execute(t, "convert", "--force", bad, target)
	require.NoError(t, err)
	assert.FileExists(t, target)
}
