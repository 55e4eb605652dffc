package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"golang.org/x/tools/imports"
)

func main() {
	apiPath := flag.String("api", "", "Path to the API definition YAML (api/connman.yaml)")
	output := flag.String("output", "", "Output path for the generated Go file")
	flag.Parse()

	if *apiPath == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: connman-gen -api <path> -output <file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*apiPath, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(apiPath, output string) error {
	def, err := LoadAPIDef(apiPath)
	if err != nil {
		return err
	}

	code, err := Generate(def)
	if err != nil {
		return fmt.Errorf("generating stubs: %w", err)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := writeFormatted(output, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(output), err)
	}
	fmt.Printf("  generated %s\n", output)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Keep the raw output around for debugging the templates.
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
