package main

import (
	"github.com/scanium/barscan/cmd/barscan/cmd"
)

func main() {
	cmd.Execute()
}
