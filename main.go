package main

import (
	"github.com/soniview/soniview/cmd"
)

func main() {
	cmd.Execute()
}
