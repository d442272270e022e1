package magetasks

import (
	"errors"
	"fmt"

	"github.com/magefile/mage/sh"
)

const golangciDisabled = "--disable=exhaustruct,varnamelen,ireturn,wrapcheck,nlreturn,gochecknoglobals,mnd,depguard,tagalign"

// LintAll runs every linter. Missing optional tools are reported, not failed.
func LintAll() error {
	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintStaticcheck, LintGolangci} {
		if err := lint(); err != nil && !IsCommandNotFound(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	PrintSuccess("All linters passed")
	return nil
}

// LintFormat fails when gofmt would change any file.
func LintFormat() error {
	PrintH2Header("Go Format")
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// LintVet runs go vet.
func LintVet() error {
	PrintH2Header("Go Vet")
	return sh.RunV("go", "vet", "./...")
}

// LintStaticcheck runs staticcheck.
func LintStaticcheck() error {
	PrintH2Header("Staticcheck")
	return optionalTool("staticcheck", "honnef.co/go/tools/cmd/staticcheck@latest", "./...")
}

// LintGolangci runs golangci-lint.
func LintGolangci() error {
	PrintH2Header("Golangci-lint")
	return optionalTool("golangci-lint", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"run", golangciDisabled, "--timeout=5m", "./...")
}

// LintGolangciFix runs golangci-lint with auto-fixes.
func LintGolangciFix() error {
	PrintH2Header("Golangci-lint Fix")
	return optionalTool("golangci-lint", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"run", "--fix", golangciDisabled, "--timeout=5m", "./...")
}

func optionalTool(tool, install string, args ...string) error {
	if err := sh.RunV(tool, args...); err != nil {
		if IsCommandNotFound(err) {
			PrintWarning(fmt.Sprintf("%s not found (install: go install %s)", tool, install))
			return err
		}
		return fmt.Errorf("%s failed: %w", tool, err)
	}
	return nil
}
