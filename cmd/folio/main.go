package main

import (
	"fmt"
	"os"

	"folio"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		site, err := loadSite()
		if err != nil {
			fail(err)
		}
		if err := site.Build(); err != nil {
			failValidation(err)
		}
	case "check":
		site, err := loadSite()
		if err != nil {
			fail(err)
		}
		if err := site.Check(); err != nil {
			failValidation(err)
		}
		fmt.Printf("ok: %d valid posts\n", site.Collection.Len())
	case "serve":
		site, err := loadSite()
		if err != nil {
			fail(err)
		}
		if err := site.Build(); err != nil {
			failValidation(err)
		}
		if err := site.Serve(); err != nil {
			fail(err)
		}
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: folio new <project-name>")
			os.Exit(1)
		}
		if err := runNew(os.Args[2]); err != nil {
			fail(err)
		}
	case "version":
		fmt.Printf("folio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func loadSite() (*folio.Site, error) {
	cfg, err := folio.LoadConfig(configPath())
	if err != nil {
		return nil, err
	}
	return folio.New(cfg), nil
}

func configPath() string {
	return folio.EnvOr("FOLIO_CONFIG", "folio.yaml")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// failValidation prints each joined validation error on its own line, so
// a collection with several broken files reads as a report.
func failValidation(err error) {
	fmt.Fprintln(os.Stderr, "Build failed:")
	for _, e := range flatten(err) {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
	os.Exit(1)
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

func printUsage() {
	fmt.Println(`folio - A static blog and portfolio content toolchain built with Go

Usage:
  folio <command> [arguments]

Commands:
  build         Validate the content collection and write build artifacts
  check         Validate the content collection without building
  serve         Build, then serve a local preview
  new <name>    Create a new folio content project
  version       Print the folio version
  help          Show this help message

Examples:
  folio new myblog
  folio check
  FOLIO_SITE_URL=https://example.com folio build`)
}
