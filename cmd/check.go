package cmd

import (
	"io/fs"
	"os"
	"path/filepath"

	"sable/common"
	"sable/depm"
	"sable/report"
	"sable/resolve"
	"sable/util"

	"github.com/ComedicChimera/olive"
)

// execCheckCommand executes the `check` subcommand: it loads every module
// under the project root and runs binding over the whole project.
func execCheckCommand(result *olive.ArgParseResult, loglevel string) int {
	rep := report.NewReporter(logLevelOf(loglevel))

	rootPath, _ := result.PrimaryArg()
	proj, ok := loadProject(rep, rootPath)
	if ok {
		resolve.Bind(proj, nil, 0)
	}

	success := rep.ShouldProceed()
	report.DisplayBindingFinished(success, rep.ErrorCount(), len(rep.Diagnostics())-rep.ErrorCount())

	if !success {
		return 1
	}

	return 0
}

// loadProject loads every module manifest under the root path into a fresh
// project and validates the import graph against the loaded module set.
func loadProject(rep *report.Reporter, rootPath string) (*depm.Project, bool) {
	proj := depm.NewProject(rep)

	walkErr := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if _, statErr := os.Stat(filepath.Join(path, common.SableModuleFileName)); statErr != nil {
			return nil
		}

		mod, ok := depm.LoadModule(rep, path)
		if !ok {
			return nil
		}

		if !proj.AddModule(mod) {
			rep.Error(mod.Name, mod.ReprPath, report.CodeModuleManifest, nil,
				"multiple modules named `%s`", mod.Name)
		}

		return nil
	})
	if walkErr != nil {
		report.DisplayFatalMessage(walkErr.Error())
		return proj, false
	}

	// The module set is fixed now: every manifest import must name a loaded
	// module.
	for _, name := range util.OrderedKeys(proj.Modules) {
		mod := proj.Modules[name]
		for _, imp := range mod.Imports {
			if _, ok := proj.Modules[imp]; !ok && imp != common.BuiltinModName {
				rep.Error(mod.Name, mod.ReprPath, report.CodeImport, nil,
					"module `%s` imports unknown module `%s`", mod.Name, imp)
			}
		}
	}

	return proj, rep.ShouldProceed()
}
