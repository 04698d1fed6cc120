// Command padflow converts step-chart files between pad layouts, preserving
// the footing intent of the original chart (crossovers, brackets, jumps,
// foot-swaps, inversions, and mine placement) rather than merely remapping
// lanes.
package main

import (
	"fmt"
	"os"
)

const toolVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]
	var err error

	switch command {
	case "convert":
		err = runConvert(args)
	case "version", "-v", "--version":
		fmt.Printf("padflow version %s\n", toolVersion)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`padflow - convert rhythm-game step charts between pad layouts

Usage:
  padflow <command> [arguments]

Commands:
  convert   Convert a chart file from one pad layout to another
  version   Print the tool version
  help      Show this message

Run 'padflow convert -h' for convert's flags.`)
}
