package main

import (
	"github.com/mj1618/macpaste/cmd"
	_ "github.com/mj1618/macpaste/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
