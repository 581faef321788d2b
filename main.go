package main

import (
	"github.com/jsphweid/fretrainer/cmd"
)

func main() {
	cmd.Execute()
}
