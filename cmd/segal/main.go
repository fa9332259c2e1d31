package main

import (
	"github.com/SoniEx2/SEGAL/cmd/segal/commands"
)

func main() {
	commands.Execute()
}
