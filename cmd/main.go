package main

import (
	"github.com/kerbaras/pokedex/cmd/pokedex"
)

func main() {
	cmd.Execute()
}
