// asm8080 is the command-line interface to an Intel 8080 cross-assembler.
package main

import (
	"context"
	"os"

	"github.com/cssylvain/asm8080/internal/cli"
	"github.com/cssylvain/asm8080/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Assembler(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
