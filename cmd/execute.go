// Package cmd is the top-level driver package for the `sable` CLI utility: it
// parses command-line arguments and runs the requested tool phases.
package cmd

import (
	"os"

	"sable/common"
	"sable/report"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `sable` CLI utility.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("sable", "sable is a tool for managing Sable projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the binder log level", false,
		[]string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "bind and check a project", true)
	checkCmd.AddPrimaryArg("project-path", "the path to the project root", true)

	graphCmd := cli.AddSubcommand("graph", "print the module dependency graph", true)
	graphCmd.AddPrimaryArg("project-path", "the path to the project root", true)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddStringArg("name", "n", "the name of the new module", false)
	modInitCmd.AddPrimaryArg("module-path", "the path to the module directory", true)

	cli.AddSubcommand("version", "print the Sable version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.DisplayFatalMessage(err.Error())
		os.Exit(1)
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		os.Exit(execCheckCommand(subResult, result.Arguments["loglevel"].(string)))
	case "graph":
		os.Exit(execGraphCommand(subResult, result.Arguments["loglevel"].(string)))
	case "mod":
		os.Exit(execModCommand(subResult))
	case "version":
		report.DisplayInfoMessage("Sable Version", common.SableVersion)
	}
}

// logLevelOf converts a log-level selector value into its enumerated value.
func logLevelOf(value string) int {
	switch value {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
