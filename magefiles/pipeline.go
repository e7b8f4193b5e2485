//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	inputDir  = "data/input"
	outputDir = "data/output"
)

// Extract writes the legend of every drawing in data/input to data/output.
func Extract() error {
	mg.Deps(Init, Build)
	fmt.Println("[extract] Extracting legends from", inputDir)
	return sh.RunV(binPath, "extract", "--data-dir", "data", "--out-dir", outputDir, inputDir)
}

// Run runs the full pipeline over data/input and records every run.
func Run() error {
	mg.Deps(Init, Build)
	fmt.Println("[run] Linking legends and counting lights in", inputDir)
	return sh.RunV(binPath, "run", "--data-dir", "data", "--out-dir", outputDir, inputDir)
}

// Review lists the unresolved links of every recorded run.
func Review() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "history", "review", "--data-dir", "data")
}

// Report renders the latest run of a drawing to data/output/<drawing>-report.html.
func Report(drawing string) error {
	mg.Deps(Build)
	out := fmt.Sprintf("%s/%s-report.html", outputDir, drawing)
	return sh.RunV(binPath, "report", drawing, "--data-dir", "data", "--format", "html", "--out", out)
}
