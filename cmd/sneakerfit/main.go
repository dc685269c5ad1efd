package main

import (
	"github.com/sneakerfitai/sneakerfitai/cmd"
)

func main() {
	cmd.Execute()
}
