package cmd

import (
	"os"
	"path/filepath"

	"sable/common"
	"sable/depm"
	"sable/report"

	"github.com/ComedicChimera/olive"
	"github.com/pelletier/go-toml"
)

// execModCommand executes the `mod` subcommand and its subcommands.
func execModCommand(result *olive.ArgParseResult) int {
	subcmdName, subResult, ok := result.Subcommand()
	if !ok {
		report.DisplayFatalMessage("expected a `mod` subcommand")
		return 1
	}

	switch subcmdName {
	case "init":
		return execModInitCommand(subResult)
	}

	return 0
}

// execModInitCommand executes the `mod init` subcommand: it creates a module
// directory with a fresh manifest.
func execModInitCommand(result *olive.ArgParseResult) int {
	modPath, _ := result.PrimaryArg()

	name := filepath.Base(modPath)
	if v, ok := result.Arguments["name"]; ok {
		name = v.(string)
	}

	if !depm.IsValidIdentifier(name) {
		report.DisplayFatalMessage("module name must be a valid identifier")
		return 1
	}

	if err := os.MkdirAll(modPath, 0o755); err != nil {
		report.DisplayFatalMessage(err.Error())
		return 1
	}

	manifestPath := filepath.Join(modPath, common.SableModuleFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		report.DisplayFatalMessage("module manifest already exists")
		return 1
	}

	buff, err := toml.Marshal(map[string]interface{}{
		"name":          name,
		"version":       "0.1.0",
		"sable-version": common.SableVersion,
		"imports":       []string{},
	})
	if err != nil {
		report.DisplayFatalMessage(err.Error())
		return 1
	}

	if err := os.WriteFile(manifestPath, buff, 0o644); err != nil {
		report.DisplayFatalMessage(err.Error())
		return 1
	}

	report.DisplayInfoMessage("Initialized Module", name)
	return 0
}
