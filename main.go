package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/iceerpgeorgia/ice-erp-sub000/cmd/consolidate"
	"github.com/iceerpgeorgia/ice-erp-sub000/cmd/reprocess"
	"github.com/iceerpgeorgia/ice-erp-sub000/cmd/root"
)

func main() {
	// Load .env silently; a missing file is fine.
	_ = godotenv.Load()

	root.Init()
	root.Cmd.AddCommand(consolidate.Cmd)
	root.Cmd.AddCommand(reprocess.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
