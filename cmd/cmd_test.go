package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pb33f/harlua/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHAR = `{"log": {
	"version": "1.2",
	"creator": {"name": "Tester", "version": "2.0"},
	"pages": [{"id": "p1", "title": "Home", "startedDateTime": "2014-05-01T00:00:00Z", "pageTimings": {}}],
	"entries": [{
		"pageref": "p1", "startedDateTime": "2014-05-01T00:00:01Z", "time": 10,
		"request": {"method": "GET", "url": "http://a/", "headers": []},
		"response": {"bodySize": 1}
	}]
}}`

func writeHAR(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConvertFile_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeHAR(t, dir, "session.har", sampleHAR)

	c, err := convertFile(discardLogger(), config.Default(), input, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "session.lua"), c.Output)
	assert.Len(t, c.Source.Hash, 16)
	assert.Equal(t, 1, c.Result.Stats.PageBatches)

	script, err := os.ReadFile(c.Output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(script), "-- LoadImpact user scenario script session.lua\n"))
	assert.Contains(t, string(script), "from session.har (created by Tester 2.0).")
	assert.Contains(t, string(script), `http.page_start("p1")`)
}

func TestConvertFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := convertFile(discardLogger(), config.Default(), filepath.Join(dir, "missing.har"), "")
	assert.ErrorContains(t, err, "does not exist")

	_, err = convertFile(discardLogger(), config.Default(), dir, "")
	assert.ErrorContains(t, err, "directory")

	bad := writeHAR(t, dir, "bad.har", `{"log": {"version": "2.0", "entries": []}}`)
	_, err = convertFile(discardLogger(), config.Default(), bad, "")
	assert.ErrorContains(t, err, "not supported")
	assert.ErrorContains(t, err, "is not a convertible HAR document")
	assert.NoFileExists(t, filepath.Join(dir, "bad.lua"))
}

func TestScriptOptions_Stdout(t *testing.T) {
	opts := scriptOptions(config.Default(), "dir/session.har", "-")
	assert.Equal(t, "session.har", opts.InputName)
	assert.Equal(t, "session.lua", opts.OutputName)
	assert.Equal(t, scriptVersion(), opts.ToolVersion)
}

func TestPlanBatch(t *testing.T) {
	jobs := planBatch([]string{"a.har", "b.har", "./a.har", "a.json", "dir/../b.har"}, ".lua")
	require.Len(t, jobs, 3)

	assert.Equal(t, "a.har", jobs[0].input)
	assert.Equal(t, "a.lua", jobs[0].output)
	assert.NoError(t, jobs[0].err)

	assert.Equal(t, "b.har", jobs[1].input)
	assert.NoError(t, jobs[1].err)

	assert.Equal(t, "a.json", jobs[2].input)
	assert.EqualError(t, jobs[2].err, "output 'a.lua' is already written by 'a.har'")
}

func TestBatchCommand_OutputCollision(t *testing.T) {
	dir := t.TempDir()
	har := writeHAR(t, dir, "capture.har", sampleHAR)
	jsonCapture := writeHAR(t, dir, "capture.json", sampleHAR)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	sep := string(filepath.Separator)
	rootCmd.SetArgs([]string{"batch", har, jsonCapture, dir + sep + "." + sep + "capture.har"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 conversions failed")

	report := out.String()
	assert.Equal(t, 1, strings.Count(report, "Converted '"))
	assert.Contains(t, report, "Failed '"+jsonCapture+"': output")
	assert.FileExists(t, filepath.Join(dir, "capture.lua"))
}

func TestRootCommand_Convert(t *testing.T) {
	dir := t.TempDir()
	input := writeHAR(t, dir, "in.har", sampleHAR)
	output := filepath.Join(dir, "out", "scenario.lua")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{input, output})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Converted '"+input+"' -> '"+output+"'.\n", out.String())
	assert.FileExists(t, output)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	first := writeHAR(t, dir, "first.har", sampleHAR)
	second := writeHAR(t, dir, "second.har", sampleHAR)
	missing := filepath.Join(dir, "missing.har")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"batch", "-j", "2", first, second, missing, first})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 conversions failed")

	report := out.String()
	assert.Equal(t, 2, strings.Count(report, "Converted '"))
	assert.Contains(t, report, "Failed '"+missing+"'")
	assert.FileExists(t, filepath.Join(dir, "first.lua"))
	assert.FileExists(t, filepath.Join(dir, "second.lua"))
}

func TestValidateHARFile(t *testing.T) {
	assert.Error(t, ValidateHARFile(""))
	assert.Error(t, ValidateHARFile(t.TempDir()))
	assert.NoError(t, ValidateHARFile(writeHAR(t, t.TempDir(), "x.har", "{}")))
}
