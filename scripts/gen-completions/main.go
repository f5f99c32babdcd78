// Command gen-completions writes ppp's shell completion scripts for bash,
// zsh, fish and powershell into an output directory for release archives.
//
// Usage:
//
//	go run ./scripts/gen-completions [output-dir]
//
// The default output directory is "completions".
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/ppp/internal/cli"
)

// scriptNames maps each shell to the file name its script is released as.
var scriptNames = map[string]string{
	"bash":       "ppp.bash",
	"zsh":        "_ppp",
	"fish":       "ppp.fish",
	"powershell": "ppp.ps1",
}

func main() {
	outDir := "completions"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := run(outDir); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("All completions written to %s/\n", outDir)
}

func run(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", outDir, err)
	}

	rootCmd := cli.NewRootCmd()
	for _, shell := range cli.CompletionShells() {
		path := filepath.Join(outDir, scriptNames[shell])
		if err := writeScript(rootCmd, shell, path); err != nil {
			return err
		}
		fmt.Printf("Generated %s\n", path)
	}
	return nil
}

func writeScript(root *cobra.Command, shell, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if err := cli.WriteCompletion(root, shell, f); err != nil {
		f.Close()
		return fmt.Errorf("generating %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}
	return nil
}
