package support

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	barscancmd "github.com/scanium/barscan/cmd/barscan/cmd"
	"github.com/scanium/barscan/internal/testutil"
)

// RegisterCLISteps wires the command-line step definitions.
func (testCtx *TestContext) RegisterCLISteps(sc *godog.ScenarioContext) {
	sc.Step(`^an image "([^"]*)" containing one barcode$`, testCtx.anImageWithBarcode)
	sc.Step(`^an image "([^"]*)" containing no barcode$`, testCtx.anImageWithoutBarcode)
	sc.Step(`^I run barscan with arguments "([^"]*)"$`, testCtx.iRunBarscan)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the JSON output should report (\d+) barcodes? in "([^"]*)"$`, testCtx.theJSONOutputShouldReport)
	sc.Step(`^the directory "([^"]*)" should contain (\d+) PNG files?$`, testCtx.directoryShouldContainPNGs)
}

func (testCtx *TestContext) anImageWithBarcode(name string) error {
	img := testutil.NewBarcodeImage(320, 200, testutil.DefaultBarcodeSpec(160, 100))
	return writePNG(filepath.Join(testCtx.TempDir, name), img)
}

func (testCtx *TestContext) anImageWithoutBarcode(name string) error {
	img := testutil.NewUniformImage(320, 200, color.White)
	return writePNG(filepath.Join(testCtx.TempDir, name), img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // G304: scenario temp files
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return png.Encode(f, img)
}

// iRunBarscan executes the root command in-process. Occurrences of {tmp} in
// the argument string are replaced with the scenario temp directory.
func (testCtx *TestContext) iRunBarscan(argLine string) error {
	argLine = strings.ReplaceAll(argLine, "{tmp}", testCtx.TempDir)
	args := strings.Fields(argLine)

	root := barscancmd.GetRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	testCtx.LastError = root.Execute()
	testCtx.LastOutput = buf.String()
	return nil
}

func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastError != nil {
		return fmt.Errorf("command failed: %w (output: %s)", testCtx.LastError, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastError == nil {
		return fmt.Errorf("command unexpectedly succeeded (output: %s)", testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldContain(want string) error {
	if !strings.Contains(testCtx.LastOutput, want) {
		return fmt.Errorf("output %q does not contain %q", testCtx.LastOutput, want)
	}
	return nil
}

func (testCtx *TestContext) theJSONOutputShouldReport(count int, name string) error {
	var results []barscancmd.FileResult
	if err := json.Unmarshal([]byte(testCtx.LastOutput), &results); err != nil {
		return fmt.Errorf("output is not valid JSON: %w (output: %s)", err, testCtx.LastOutput)
	}
	for _, res := range results {
		if filepath.Base(res.File) == name {
			if len(res.Barcodes) != count {
				return fmt.Errorf("expected %d barcodes in %s, got %d", count, name, len(res.Barcodes))
			}
			return nil
		}
	}
	return fmt.Errorf("no result for file %s in output %s", name, testCtx.LastOutput)
}

func (testCtx *TestContext) directoryShouldContainPNGs(dir string, count int) error {
	dir = strings.ReplaceAll(dir, "{tmp}", testCtx.TempDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	found := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			found++
		}
	}
	if found != count {
		return fmt.Errorf("expected %d PNG files in %s, found %d", count, dir, found)
	}
	return nil
}
