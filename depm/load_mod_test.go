package depm

import (
	"os"
	"path/filepath"
	"testing"

	"sable/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "sable-mod.toml"), []byte(contents), 0o644)
	require.NoError(t, err)

	return dir
}

func TestLoadModule(t *testing.T) {
	dir := writeManifest(t, `
name = "app"
version = "1.2.0"
imports = ["netlib", "strutil"]
`)

	rep := report.NewReporter(report.LogLevelSilent)
	mod, ok := LoadModule(rep, dir)
	require.True(t, ok)

	assert.Equal(t, "app", mod.Name)
	assert.Equal(t, "1.2.0", mod.Version)
	assert.Equal(t, []string{"netlib", "strutil"}, mod.Imports)
	assert.Equal(t, filepath.Join(dir, "app.sbl"), mod.ReprPath)
	assert.NotNil(t, mod.Globals)
}

func TestLoadModuleMissingManifest(t *testing.T) {
	rep := report.NewReporter(report.LogLevelSilent)
	_, ok := LoadModule(rep, t.TempDir())

	assert.False(t, ok)
	require.NotEmpty(t, rep.Diagnostics())
	assert.Equal(t, report.CodeModuleManifest, rep.Diagnostics()[0].Code)
}

func TestLoadModuleRejectsBadName(t *testing.T) {
	dir := writeManifest(t, `name = "not a name"`)

	rep := report.NewReporter(report.LogLevelSilent)
	_, ok := LoadModule(rep, dir)

	assert.False(t, ok)
	assert.Equal(t, report.CodeModuleManifest, rep.Diagnostics()[0].Code)
}

func TestLoadModuleRejectsBadImport(t *testing.T) {
	dir := writeManifest(t, `
name = "app"
imports = ["1bad"]
`)

	rep := report.NewReporter(report.LogLevelSilent)
	_, ok := LoadModule(rep, dir)

	assert.False(t, ok)
}

func TestLoadModuleWarnsOnVersionMismatch(t *testing.T) {
	dir := writeManifest(t, `
name = "app"
sable-version = "99.0.0"
`)

	rep := report.NewReporter(report.LogLevelSilent)
	_, ok := LoadModule(rep, dir)

	// A mismatched toolchain version is a warning, not an error.
	assert.True(t, ok)
	require.NotEmpty(t, rep.Diagnostics())
	assert.False(t, rep.Diagnostics()[0].IsError())
	assert.True(t, rep.ShouldProceed())
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"a", "app", "net_lib", "_private", "mod2", "CamelMod"}
	for _, name := range valid {
		assert.True(t, IsValidIdentifier(name), name)
	}

	invalid := []string{"", "2mod", "with space", "with-dash", "dot.ted"}
	for _, name := range invalid {
		assert.False(t, IsValidIdentifier(name), name)
	}
}

func TestProjectRejectsDuplicateModules(t *testing.T) {
	proj := NewProject(report.NewReporter(report.LogLevelSilent))

	require.True(t, proj.AddModule(NewModule("app")))
	assert.False(t, proj.AddModule(NewModule("app")))
}
