package depm

import (
	"os"
	"path/filepath"

	"sable/common"
	"sable/report"

	"github.com/pelletier/go-toml"
)

// tomlModule represents a Sable module as it is encoded in its TOML manifest.
type tomlModule struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	SableVersion string   `toml:"sable-version"`
	Imports      []string `toml:"imports"`
}

// LoadModule loads and validates a module manifest.  `abspath` is the
// absolute path to the module directory.  This function returns the
// deserialized module and a success boolean; failures are reported through
// the given reporter.
func LoadModule(rep *report.Reporter, abspath string) (*Module, bool) {
	manifestPath := filepath.Join(abspath, common.SableModuleFileName)

	buff, err := os.ReadFile(manifestPath)
	if err != nil {
		rep.Error("", manifestPath, report.CodeModuleManifest, nil,
			"unable to read module file at `%s`: %s", abspath, err)
		return nil, false
	}

	tomlMod := &tomlModule{}
	if err := toml.Unmarshal(buff, tomlMod); err != nil {
		rep.Error("", manifestPath, report.CodeModuleManifest, nil,
			"error parsing module file at `%s`: %s", abspath, err)
		return nil, false
	}

	if !validateModule(rep, manifestPath, tomlMod) {
		return nil, false
	}

	mod := NewModule(tomlMod.Name)
	mod.Version = tomlMod.Version
	mod.Imports = tomlMod.Imports
	mod.ReprPath = filepath.Join(abspath, tomlMod.Name+common.SableFileExt)

	return mod, true
}

// validateModule checks that the manifest contents are valid.
func validateModule(rep *report.Reporter, manifestPath string, tomlMod *tomlModule) bool {
	if tomlMod.Name == "" {
		rep.Error("", manifestPath, report.CodeModuleManifest, nil, "missing module name")
		return false
	}

	if !IsValidIdentifier(tomlMod.Name) {
		rep.Error(tomlMod.Name, manifestPath, report.CodeModuleManifest, nil,
			"module name must be a valid identifier")
		return false
	}

	for _, imp := range tomlMod.Imports {
		if !IsValidIdentifier(imp) {
			rep.Error(tomlMod.Name, manifestPath, report.CodeModuleManifest, nil,
				"imported module name `%s` must be a valid identifier", imp)
			return false
		}
	}

	if tomlMod.SableVersion != "" && tomlMod.SableVersion != common.SableVersion {
		rep.Warning(tomlMod.Name, manifestPath, report.CodeModuleManifest, nil,
			"version of module `%s` (v%s) does not match current sable version (v%s)",
			tomlMod.Name, tomlMod.SableVersion, common.SableVersion)
	}

	return true
}

// IsValidIdentifier returns whether the given name is a valid Sable
// identifier.
func IsValidIdentifier(name string) bool {
	if len(name) == 0 {
		return false
	}

	for i, c := range name {
		if c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' {
			continue
		}

		if i > 0 && '0' <= c && c <= '9' {
			continue
		}

		return false
	}

	return true
}
