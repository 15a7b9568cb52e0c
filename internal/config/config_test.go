package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"production-line-planner/internal/machine"
)

// chdirTemp 切换到空的临时目录，避免读到仓库里的 config.yaml
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("无法写入配置文件: %v", err)
	}
}

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 51400, cfg.TargetPrice)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "bisect", cfg.Search.Strategy)
	assert.Equal(t, "EXACT", cfg.Search.Tactic)
	assert.Equal(t, "target / 1725", cfg.Search.InitialGuess)
	assert.Equal(t, 1<<20, cfg.Search.MaxCapacity)
	assert.Equal(t, machine.DefaultCatalog(), cfg.Categories)
}

func TestLoadConfig_File(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), `
target_price: 30000
output: json
search:
  strategy: exhaustive
categories:
  soldering:
    cost_step: 75
`)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 30000, cfg.TargetPrice)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "exhaustive", cfg.Search.Strategy)
	// 未出现在文件里的字段保留默认值
	assert.Equal(t, "EXACT", cfg.Search.Tactic)
	assert.Equal(t, 75, cfg.Categories.Soldering.CostStep)
	assert.Equal(t, 2000, cfg.Categories.Soldering.CostBaseline)
	assert.Equal(t, machine.DefaultCatalog().Assembly, cfg.Categories.Assembly)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "line.yaml")
	writeFile(t, path, "target_price: 12345\n")

	cfg, err := LoadConfig(parseFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, 12345, cfg.TargetPrice)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)
	_, err := LoadConfig(parseFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadConfig_Env(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PLANNER_TARGET_PRICE", "77000")
	t.Setenv("PLANNER_SEARCH_TACTIC", "ALLOW_OVERSHOOT")
	t.Setenv("PLANNER_CATEGORIES_ASSEMBLY_COST_BASELINE", "4500")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 77000, cfg.TargetPrice)
	assert.Equal(t, "ALLOW_OVERSHOOT", cfg.Search.Tactic)
	assert.Equal(t, 4500, cfg.Categories.Assembly.CostBaseline)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "config.yaml"), "target_price: 30000\noutput: json\n")

	cfg, err := LoadConfig(parseFlags(t, "--target", "19000", "--strategy", "exhaustive", "--log-level", "debug"))
	require.NoError(t, err)
	assert.Equal(t, 19000, cfg.TargetPrice)
	assert.Equal(t, "exhaustive", cfg.Search.Strategy)
	assert.Equal(t, "debug", cfg.LogLevel)
	// 未设置的参数不覆盖配置文件
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "capacity_min above capacity_max", content: "categories:\n  assembly:\n    capacity_min: 20\n"},
		{name: "negative target", content: "target_price: -5\n"},
		{name: "unknown output", content: "output: xml\n"},
		{name: "unknown strategy", content: "search:\n  strategy: random\n"},
		{name: "unknown tactic", content: "search:\n  tactic: loose\n"},
		{name: "unknown log level", content: "log_level: trace\n"},
		{name: "zero max capacity", content: "search:\n  max_capacity: 0\n"},
		{name: "max capacity above limit", content: "search:\n  max_capacity: 2147483648\n"},
		{name: "empty guess", content: "search:\n  initial_guess: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			writeFile(t, filepath.Join(dir, "config.yaml"), tt.content)
			_, err := LoadConfig(nil)
			assert.Error(t, err)
		})
	}
}
