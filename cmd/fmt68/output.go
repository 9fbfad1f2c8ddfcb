package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Urethramancer/fmt68/driver"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	changedColor = color.New(color.FgGreen)

	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Version components of the fmt68 tool.
const (
	VersionMajor = "0"
	VersionMinor = "1"
	VersionPatch = "0"
)

func versionString() string {
	return "fmt68 " + versionMajorColor.Sprint(VersionMajor) + "." +
		versionMinorColor.Sprint(VersionMinor) + "." +
		versionPatchColor.Sprint(VersionPatch)
}

// setupColor applies the --color mode. "auto" colorizes only when standard
// error is a terminal.
func setupColor(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return fmt.Errorf("unsupported color mode %q (want auto, on or off)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func printError(path string, err error) {
	if path == "" {
		errorColor.Fprintf(os.Stderr, "fmt68: %v\n", err)
		return
	}
	errorColor.Fprintf(os.Stderr, "fmt68: %s: %v\n", path, err)
}

// report prints the per-file results and returns the exit status.
func report(results []driver.Result, list, write bool) int {
	status := 0
	for _, res := range results {
		if res.Err != nil {
			printError(res.Path, res.Err)
			status = 1
			continue
		}

		switch {
		case list:
			if res.Changed {
				fmt.Println(res.Path)
				status = 1
			}
		case write:
			if res.Changed {
				changedColor.Fprintf(os.Stderr, "reformatted %s\n", res.Path)
			}
		default:
			if _, err := os.Stdout.Write(res.Formatted); err != nil {
				printError(res.Path, err)
				return 1
			}
		}
	}
	return status
}
