package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"preset-localizer/internal/catalog"
	"preset-localizer/internal/config"
	"preset-localizer/internal/override"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const englishXML = `<?xml version="1.0" encoding="utf-8"?>
<TextExport><Texts>
  <Text><GUID>1</GUID><Text>House</Text></Text>
  <Text><GUID>2</GUID><Text>Market</Text></Text>
  <Text><GUID>3</GUID><Text>Pier</Text></Text>
</Texts></TextExport>`

const chineseXML = `<?xml version="1.0" encoding="utf-8"?>
<TextExport><Texts>
  <Text><GUID>1</GUID><Text>房子</Text></Text>
  <Text><GUID>2</GUID><Text>市场</Text></Text>
  <Text><GUID>3</GUID><Text>Pier</Text></Text>
</Texts></TextExport>`

const presetsJSON = `{
  "Version": "4.0",
  "Buildings": [
    {"Guid": 1010277, "Header": "(A7) Residence", "Identifier": "House_New", "Localization": {"eng": "(New) House"}},
    {"Guid": 100, "Header": "Misc", "Identifier": "Random slot mining", "Localization": {"eng": "Random Slot"}},
    {"Guid": 101, "Header": "Misc", "Identifier": "Thing", "Localization": {"eng": "Unknown Thing"}},
    {"Guid": 102, "Header": "Trade", "Identifier": "Market", "Localization": {"eng": "Market", "zhs": "集市"}}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig() *config.Config {
	return &config.Config{
		WorkerCount: 2,
		SourceLang:  "eng",
		TargetLang:  "zhs",
		GameVersion: "1800",
	}
}

func TestRunAuto(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "texts_english.xml", englishXML)
	writeFile(t, dir, "texts_chinese.xml", chineseXML)
	input := writeFile(t, dir, "presets.json", presetsJSON)
	output := filepath.Join(dir, "presets_new.json")
	failures := filepath.Join(dir, "failures.json")

	err := runAuto(context.Background(), testConfig(), autoOptions{
		input:          input,
		output:         output,
		textsDir:       dir,
		failures:       failures,
		failuresFormat: "json",
	})
	require.NoError(t, err)

	doc, err := catalog.Load(output)
	require.NoError(t, err)
	entries := doc.Entries()
	require.Len(t, entries, 4)

	text, _ := entries[0].Text("zhs")
	assert.Equal(t, "(New) 房子", text)
	text, _ = entries[1].Text("zhs")
	assert.Equal(t, "空矿区", text)
	assert.False(t, entries[2].Has("zhs"))
	text, _ = entries[3].Text("zhs")
	assert.Equal(t, "集市", text)

	data, err := os.ReadFile(failures)
	require.NoError(t, err)
	var report []map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report, 1)
	assert.Equal(t, "unknown thing", report[0]["eng"])
	assert.Equal(t, "Thing", report[0]["Identifier"])

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Version": "4.0"`)
	assert.Contains(t, string(raw), `"Guid": 1010277`)
}

func TestRunAutoIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "en.xml", englishXML)
	target := writeFile(t, dir, "zh.xml", chineseXML)
	input := writeFile(t, dir, "presets.json", presetsJSON)
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	opts := autoOptions{source: source, target: target, failures: filepath.Join(dir, "f.tsv"), failuresFormat: "tsv"}

	opts.input, opts.output = input, first
	require.NoError(t, runAuto(context.Background(), testConfig(), opts))
	opts.input, opts.output = first, second
	require.NoError(t, runAuto(context.Background(), testConfig(), opts))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	tsv, err := os.ReadFile(filepath.Join(dir, "f.tsv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(tsv), "guid\theader\tidentifier\teng\n"))
}

func TestRunAutoWithoutBuildingsWritesNothing(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, dir, "en.xml", englishXML)
	target := writeFile(t, dir, "zh.xml", chineseXML)
	input := writeFile(t, dir, "presets.json", `{"Buildings": []}`)
	output := filepath.Join(dir, "out.json")

	err := runAuto(context.Background(), testConfig(), autoOptions{
		input: input, output: output, source: source, target: target,
		failures: filepath.Join(dir, "f.json"), failuresFormat: "json",
	})
	require.NoError(t, err)

	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestRunAutoValidates(t *testing.T) {
	cfg := testConfig()
	cfg.TargetLang = "klingon"
	assert.Error(t, runAuto(context.Background(), cfg, autoOptions{failuresFormat: "json"}))

	cfg = testConfig()
	cfg.GameVersion = "117"
	assert.Error(t, runAuto(context.Background(), cfg, autoOptions{failuresFormat: "json"}))

	assert.Error(t, runAuto(context.Background(), testConfig(), autoOptions{failuresFormat: "csv"}))
}

func TestResolveExports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "texts_english.xml", englishXML)
	german := writeFile(t, dir, "texts_german.xml", chineseXML)

	cfg := testConfig()
	cfg.TargetLang = "ger"
	source, target, err := resolveExports(cfg, autoOptions{textsDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "texts_english.xml"), source)
	assert.Equal(t, german, target)

	_, _, err = resolveExports(testConfig(), autoOptions{textsDir: dir})
	assert.Error(t, err)

	source, target, err = resolveExports(testConfig(), autoOptions{})
	require.NoError(t, err)
	assert.Equal(t, "texts_english.xml", source)
	assert.Equal(t, "texts_chinese.xml", target)
}

func TestRunManual(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "presets.json", presetsJSON)
	fixes := writeFile(t, dir, "fixes.yaml", "\"1800\":\n  zhs:\n    Thing: 东西\n")
	output := filepath.Join(dir, "out.json")

	cfg := testConfig()
	cfg.OverridesFile = fixes
	require.NoError(t, runManual(context.Background(), cfg, manualOptions{input: input, output: output}))

	doc, err := catalog.Load(output)
	require.NoError(t, err)
	entries := doc.Entries()

	assert.False(t, entries[0].Has("zhs"))
	text, _ := entries[1].Text("zhs")
	assert.Equal(t, "空矿区", text)
	text, _ = entries[2].Text("zhs")
	assert.Equal(t, "东西", text)
	text, _ = entries[3].Text("zhs")
	assert.Equal(t, "集市", text)
}

func TestRunTreeloc(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "sheet.csv", "Property String (For developer use),English,Chinese\ntree.oak,Oak,橡树\n")
	output := filepath.Join(dir, "treeLocalization.json")

	require.NoError(t, runTreeloc(context.Background(), input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, `{
  "languages": {
    "eng": {
      "tree.oak": "Oak"
    },
    "zhs": {
      "tree.oak": "橡树"
    }
  }
}
`, string(data))
}

func TestPrintLanguages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLanguages(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "eng\tEnglish", lines[0])
}

func TestPrintRules(t *testing.T) {
	table := override.NewTable(
		override.Rule{Version: "1800", Lang: "zhs", Identifier: "b", Text: "乙"},
		override.Rule{Version: "1800", Lang: "zhs", Identifier: "a", Text: "甲"},
		override.Rule{Version: "2205", Lang: "zhs", Identifier: "c", Text: "丙"},
	)

	var buf bytes.Buffer
	require.NoError(t, printRules(&buf, table, "1800", "zhs"))
	assert.Equal(t, "a\t甲\nb\t乙\n", buf.String())
}

func TestRootCommandLanguages(t *testing.T) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"languages"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "zht\tTraditional Chinese")
}

func TestOverridesPushRequiresDatabase(t *testing.T) {
	assert.Error(t, runOverridesPush(context.Background(), testConfig()))
}
