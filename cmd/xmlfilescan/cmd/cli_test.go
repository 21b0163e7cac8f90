package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oneconcern/domx/pkg/catalog"
	"github.com/oneconcern/domx/pkg/fileobject"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stderr string
	code   int
}

func run(t *testing.T, fs afero.Fs, args ...string) result {
	t.Helper()
	var errOut bytes.Buffer
	res := result{}

	exited := false
	osExit = func(code int) {
		if !exited {
			res.code = code
			exited = true
		}
	}
	stderr = &errOut
	appFs = fs
	scanFlags.md5, scanFlags.time, scanFlags.closed, scanFlags.description = false, false, false, ""
	require.NoError(t, rootCmd.PersistentFlags().Set("metrics", ""))
	defer func() {
		osExit = os.Exit
		stderr = os.Stderr
		appFs = nil
	}()

	rootCmd.SetOut(&errOut)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--root", "/objects", "--system", "/sys", "--loglevel", "none"}, args...))
	Execute()

	res.stderr = errOut.String()
	return res
}

func testFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/hello.txt", []byte("hello"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/empty.txt", nil, 0644))
	return fs
}

func openCatalog(t *testing.T, fs afero.Fs, name string) *catalog.Catalog {
	root := catalog.NewRoot(catalog.WithFs(fs), catalog.WithDir("/objects"), catalog.WithSystemDir("/sys"))
	cat, err := root.Open(context.Background(), name)
	require.NoError(t, err)
	return cat
}

func TestScan(t *testing.T) {
	fs := testFs(t)

	res := run(t, fs, "--md5", "--description", "greetings", "files", "/data/hello.txt", "/data/empty.txt")
	require.Equal(t, 0, res.code, res.stderr)

	cat := openCatalog(t, fs, "files")
	keys, err := cat.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"empty.txt", "hello.txt"}, keys)

	xfo := fileobject.New()
	require.NoError(t, cat.Load(context.Background(), "hello.txt", xfo))
	assert.Equal(t, "/data", xfo.Directory.Get())
	assert.Equal(t, uint64(5), xfo.Size.Get())
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", xfo.MD5.Get())
	assert.Equal(t, "greetings", xfo.Description.Get())
	assert.Equal(t, fileobject.Open, xfo.State.Get())
}

func TestScanTimeKey(t *testing.T) {
	fs := testFs(t)

	res := run(t, fs, "--time", "--closed", "files", "/data/hello.txt")
	require.Equal(t, 0, res.code, res.stderr)

	cat := openCatalog(t, fs, "files")
	keys, err := cat.Keys(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.True(t, strings.HasSuffix(keys[0], "-hello.txt"))

	xfo := fileobject.New()
	require.NoError(t, cat.Load(context.Background(), keys[0], xfo))
	assert.Equal(t, xfo.ModifiedTimeKey(), keys[0])
	assert.Equal(t, fileobject.Closed, xfo.State.Get())
	assert.Equal(t, "", xfo.MD5.Get())
}

func TestScanCountsErrors(t *testing.T) {
	fs := testFs(t)

	res := run(t, fs, "files", "/data/missing.txt", "/data/hello.txt", "/data")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "/data/missing.txt")

	cat := openCatalog(t, fs, "files")
	keys, err := cat.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"hello.txt"}, keys)
}

func TestScanUsage(t *testing.T) {
	fs := testFs(t)

	assert.Equal(t, 1, run(t, fs, "files").code)
	assert.Equal(t, 1, run(t, fs).code)
}

func TestScanBadCatalog(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, afero.WriteFile(fs, "/objects/blocked.catalog", []byte("not a directory"), 0644))

	path := filepath.Join(t.TempDir(), "xmlfilescan.prom")
	res := run(t, fs, "--metrics", path, "blocked", "/data/hello.txt")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "could not open catalog")

	b, err := os.ReadFile(path)
	require.NoError(t, err, "metrics are written on failure")
	assert.Contains(t, string(b), `domx_storage_failures_total{op="Get"}`)
}
