package support

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/cucumber/godog"

	"github.com/scanium/barscan/internal/config"
	"github.com/scanium/barscan/internal/server"
	"github.com/scanium/barscan/internal/testutil"
)

// RegisterServerSteps wires the HTTP server step definitions.
func (testCtx *TestContext) RegisterServerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a running detection server$`, testCtx.aRunningDetectionServer)
	sc.Step(`^I upload an image with one barcode to "([^"]*)"$`, testCtx.iUploadBarcodeImage)
	sc.Step(`^I request "([^"]*)"$`, testCtx.iRequest)
	sc.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
	sc.Step(`^the response should report (\d+) barcodes?$`, testCtx.theResponseShouldReportBarcodes)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, testCtx.theResponseFieldShouldBe)
}

func (testCtx *TestContext) aRunningDetectionServer() error {
	cfg := config.DefaultConfig()
	mux := http.NewServeMux()
	server.NewServer(&cfg).SetupRoutes(mux)
	testCtx.HTTPServer = httptest.NewServer(mux)
	return nil
}

func (testCtx *TestContext) iUploadBarcodeImage(endpoint string) error {
	if testCtx.HTTPServer == nil {
		return fmt.Errorf("no server running")
	}

	img := testutil.NewBarcodeImage(320, 200, testutil.DefaultBarcodeSpec(160, 100))
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return fmt.Errorf("failed to encode test image: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "upload.png")
	if err != nil {
		return err
	}
	if _, err := fw.Write(encoded.Bytes()); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	resp, err := http.Post(testCtx.HTTPServer.URL+endpoint, mw.FormDataContentType(), &body)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	return testCtx.recordResponse(resp)
}

func (testCtx *TestContext) iRequest(endpoint string) error {
	if testCtx.HTTPServer == nil {
		return fmt.Errorf("no server running")
	}
	resp, err := http.Get(testCtx.HTTPServer.URL + endpoint)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return testCtx.recordResponse(resp)
}

func (testCtx *TestContext) recordResponse(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	testCtx.LastHTTPStatusCode = resp.StatusCode
	testCtx.LastHTTPResponse = buf.String()
	testCtx.LastHTTPHeaders = map[string]string{}
	for k := range resp.Header {
		testCtx.LastHTTPHeaders[k] = resp.Header.Get(k)
	}
	return nil
}

func (testCtx *TestContext) theResponseStatusShouldBe(status int) error {
	if testCtx.LastHTTPStatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)",
			status, testCtx.LastHTTPStatusCode, testCtx.LastHTTPResponse)
	}
	return nil
}

func (testCtx *TestContext) theResponseShouldReportBarcodes(count int) error {
	var dr server.DetectResponse
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &dr); err != nil {
		return fmt.Errorf("response is not valid JSON: %w (body: %s)", err, testCtx.LastHTTPResponse)
	}
	if dr.Result == nil {
		return fmt.Errorf("response has no result (body: %s)", testCtx.LastHTTPResponse)
	}
	if dr.Result.Count != count {
		return fmt.Errorf("expected %d barcodes, got %d", count, dr.Result.Count)
	}
	return nil
}

func (testCtx *TestContext) theResponseFieldShouldBe(field, want string) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(testCtx.LastHTTPResponse), &payload); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	got, ok := payload[field]
	if !ok {
		return fmt.Errorf("response has no field %q (body: %s)", field, testCtx.LastHTTPResponse)
	}
	if !strings.EqualFold(fmt.Sprint(got), want) {
		return fmt.Errorf("expected field %q to be %q, got %v", field, want, got)
	}
	return nil
}
