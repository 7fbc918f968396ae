package main

import (
	"github.com/autobrr/rocketdeploy/cmd"
)

func main() {
	cmd.Execute()
}
