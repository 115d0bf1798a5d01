package main

import (
	"os"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// Carpet Estimator
// ============================================================

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
