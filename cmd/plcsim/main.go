package main

import (
	"os"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
