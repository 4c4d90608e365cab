package main

import (
	"errors"
	"fmt"
	"strings"
)

var errNotRecognized = errors.New("command not recognized")

// command is one line of input, split up.
type command struct {
	name string
	args []string
}

type commandSpec struct {
	name    string
	minArgs int
	maxArgs int
	usage   string
	help    string
}

var commands = []commandSpec{
	{"roll", 0, 0, "roll", "roll the dice and play your turn"},
	{"info", 0, 1, "info [player]", "show a player, the current one by default"},
	{"board", 0, 0, "board", "show every space and who owns it"},
	{"save", 0, 1, "save [slot]", "save the game"},
	{"load", 1, 1, "load <slot>", "load a saved game"},
	{"saves", 0, 0, "saves", "list saved games"},
	{"draw", 1, 1, "draw <file.png>", "draw the board to a PNG file"},
	{"help", 0, 0, "help", "show this"},
	{"quit", 0, 0, "quit", "stop playing"},
}

func findCommand(name string) (commandSpec, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return commandSpec{}, false
}

// parseCommand splits a line and checks it against the known commands.
// Blank lines are not an error; they come back with no name.
func parseCommand(line string) (command, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return command{}, nil
	}

	c := command{name: strings.ToLower(f[0]), args: f[1:]}
	spec, ok := findCommand(c.name)
	if !ok {
		return command{}, errNotRecognized
	}
	if len(c.args) < spec.minArgs || len(c.args) > spec.maxArgs {
		return command{}, fmt.Errorf("usage: %s", spec.usage)
	}

	return c, nil
}
