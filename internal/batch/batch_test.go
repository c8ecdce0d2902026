package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanium/barscan/internal/barcode"
	"github.com/scanium/barscan/internal/testutil"
)

func writeImages(t *testing.T, dir string, names ...string) {
	t.Helper()
	img := testutil.NewBarcodeImage(320, 200, testutil.DefaultBarcodeSpec(160, 100))
	for _, name := range names {
		testutil.WritePNG(t, img, filepath.Join(dir, name))
	}
}

func TestProcess_DirectoryOfImages(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "a.png", "b.png", "c.png")

	res, err := Process([]string{dir}, Config{Workers: 2, Detection: barcode.DefaultOptions()})
	require.NoError(t, err)

	assert.Len(t, res.Files, 3)
	assert.Equal(t, 3, res.Total)
	assert.Zero(t, res.Failed)
	assert.Equal(t, 2, res.WorkerCount)
	// Discovery order survives parallel processing.
	assert.Equal(t, filepath.Join(dir, "a.png"), res.Files[0].File)
	assert.Equal(t, filepath.Join(dir, "c.png"), res.Files[2].File)
}

func TestProcess_RecursiveDiscovery(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	writeImages(t, dir, "top.png")
	writeImages(t, sub, "deep.png")

	flat, err := Process([]string{dir}, Config{Detection: barcode.DefaultOptions()})
	require.NoError(t, err)
	assert.Len(t, flat.Files, 1)

	rec, err := Process([]string{dir}, Config{Recursive: true, Detection: barcode.DefaultOptions()})
	require.NoError(t, err)
	assert.Len(t, rec.Files, 2)
}

func TestProcess_IncludeExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "keep.png", "skip.png")

	res, err := Process([]string{dir}, Config{
		ExcludePatterns: []string{"skip.*"},
		Detection:       barcode.DefaultOptions(),
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, filepath.Join(dir, "keep.png"), res.Files[0].File)

	res, err = Process([]string{dir}, Config{
		IncludePatterns: []string{"keep.*"},
		Detection:       barcode.DefaultOptions(),
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
}

func TestProcess_NoFiles(t *testing.T) {
	_, err := Process([]string{t.TempDir()}, Config{Detection: barcode.DefaultOptions()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image files found")
}

func TestProcess_ContinueOnError(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "good.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o600))

	_, err := Process([]string{dir}, Config{Detection: barcode.DefaultOptions()})
	require.Error(t, err)

	res, err := Process([]string{dir}, Config{ContinueOnError: true, Detection: barcode.DefaultOptions()})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Total)
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, isSupportedImage("x.PNG"))
	assert.True(t, isSupportedImage("a/b/c.jpeg"))
	assert.False(t, isSupportedImage("doc.pdf"))
	assert.False(t, isSupportedImage("noext"))
}
