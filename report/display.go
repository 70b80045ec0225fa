package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// DisplayInfoMessage prints an informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// DisplayFatalMessage prints a fatal error message to the user.
func DisplayFatalMessage(msg string) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + msg)
}

// displayDiagnostic displays a single diagnostic with its banner.
func displayDiagnostic(d *Diagnostic) {
	displayBanner(d)

	if d.Span == nil {
		fmt.Println(d.Message)
	} else {
		fmt.Printf("(%d, %d) %s\n", d.Span.StartLine+1, d.Span.StartCol+1, d.Message)
	}
}

// displayBanner displays the banner on top of a diagnostic: the severity, the
// machine-readable code, and the source the diagnostic belongs to.
func displayBanner(d *Diagnostic) {
	fmt.Print("\n-- ")

	var label string
	if d.IsError() {
		label = fmt.Sprintf("Error [%s]", d.Code)
		ErrorStyleBG.Print(label)
	} else {
		label = fmt.Sprintf("Warning [%s]", d.Code)
		WarnStyleBG.Print(label)
	}

	fmt.Print(" ")

	source := d.ReprPath
	if source == "" {
		source = d.ModName
	}

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(source) - len(label) - 5
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(source)
}

// DisplayBindingFinished displays the concluding message for a binding run.
func DisplayBindingFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
