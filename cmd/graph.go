package cmd

import (
	"fmt"
	"strings"

	"sable/depm"
	"sable/report"
	"sable/util"

	"github.com/ComedicChimera/olive"
)

// execGraphCommand executes the `graph` subcommand: it loads the project's
// module manifests and prints the import components in analysis order.
func execGraphCommand(result *olive.ArgParseResult, loglevel string) int {
	rep := report.NewReporter(logLevelOf(loglevel))

	rootPath, _ := result.PrimaryArg()
	proj, ok := loadProject(rep, rootPath)
	if !ok {
		return 1
	}

	for i, scc := range proj.SCCs() {
		names := util.Map(scc, func(mod *depm.Module) string { return mod.Name })

		report.DisplayInfoMessage(fmt.Sprintf("Component %d", i+1), strings.Join(names, ", "))

		for _, mod := range scc {
			if len(mod.Imports) > 0 {
				fmt.Printf("  %s -> %s\n", mod.Name, strings.Join(mod.Imports, ", "))
			}
		}
	}

	return 0
}
