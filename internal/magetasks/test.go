package magetasks

import (
	"github.com/magefile/mage/sh"
)

// TestAll runs all tests.
func TestAll() error {
	PrintH2Header("Tests")

	if err := sh.RunV("go", "test", "./..."); err != nil {
		PrintError("Tests failed")
		return err
	}

	PrintSuccess("All tests passed")
	return nil
}

// TestCoverage runs tests with coverage and prints the per-function report.
func TestCoverage() error {
	PrintH2Header("Test Coverage")

	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		PrintError("Tests failed")
		return err
	}
	_ = sh.RunV("go", "tool", "cover", "-func=coverage.out")

	PrintSuccess("Coverage report generated")
	return nil
}

// TestRace runs tests with the race detector.
func TestRace() error {
	PrintH2Header("Race Detector")

	if err := sh.RunV("go", "test", "-race", "./..."); err != nil {
		PrintError("Race detector found issues")
		return err
	}

	PrintSuccess("No race conditions detected")
	return nil
}

// Smoke runs the built binary against the sample logs in testdata/.
func Smoke() error {
	PrintH2Header("Smoke")

	if err := sh.RunV(BinPath, "testdata/baseline.log"); err != nil {
		PrintError("Single-log run failed")
		return err
	}
	if err := sh.RunV(BinPath, "--format", "text", "testdata/baseline.log", "testdata/current.log"); err != nil {
		PrintError("Diff run failed")
		return err
	}

	PrintSuccess("Smoke run passed")
	return nil
}
