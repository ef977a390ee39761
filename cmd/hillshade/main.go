package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/titusjan/hill-shading/internal/compare"
	"github.com/titusjan/hill-shading/internal/config"
	"github.com/titusjan/hill-shading/internal/shade"
	"github.com/titusjan/hill-shading/internal/tiles"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"shade", "Render a shaded relief image and its previews.", shade.Run},
		{"tiles", "Build XYZ tiles of the shaded relief.", tiles.Run},
		{"compare", "Render every blend mode and intensity model side by side.", compare.Run},
		{"config", "Print or save the effective configuration.", config.Run},
		{"help", "Print this message.", func(s *flag.FlagSet) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for _, cmd := range subCommands {
		fmt.Printf("%12s    %s\n", cmd.name, cmd.description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]

	for _, cmd := range subCommands {
		if cmd.name == name {
			set := flag.NewFlagSet(name, flag.ExitOnError)
			cmd.run(set)
			return
		}
	}

	fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", name)
	printUsage()
	os.Exit(1)
}
