// Elixir Fixture Tree Generator
//
// This tool generates a synthetic Mix project layout for performance testing and profiling.
// It creates lib/ and test/ files mixing plain code with single-line, multi-line,
// heredoc and embedded IO.puts calls to stress the detector and span extender.
//
// Usage:
//
//	go run main.go ./fixtures
//	go run main.go ./fixtures 5000  # Specify the number of files
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultFileCount = 1000
	functionsPerFile = 12
)

var (
	namespaces = []string{"Accounts", "Billing", "Catalog", "Inventory", "Notifications", "Reports", "Search", "Shipping"}

	nouns = []string{"user", "order", "invoice", "product", "session", "payment", "item", "event"}

	messages = []string{
		"Starting import", "Done", "Retrying request", "Cache miss",
		"Processing batch", "Skipping record", "Connected", "Shutting down",
	}
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: generate_fixtures DIR [FILES]")
		os.Exit(2)
	}
	dir := os.Args[1]

	count := defaultFileCount
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil {
			count = n
		}
	}

	bytesWritten := 0
	statements := 0

	for i := 0; i < count; i++ {
		ns := namespaces[rand.Intn(len(namespaces))]
		root, ext := "lib", ".ex"
		if i%4 == 3 {
			root, ext = "test", ".exs"
		}

		path := filepath.Join(dir, root, strings.ToLower(ns), fmt.Sprintf("module_%d%s", i, ext))
		content, n := generateModule(ns, i)

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create directory: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			os.Exit(1)
		}

		bytesWritten += len(content)
		statements += n
	}

	fmt.Fprintf(os.Stderr, "Generated %d files (%d bytes) with %d IO.puts statements\n", count, bytesWritten, statements)
}

func generateModule(ns string, index int) (string, int) {
	var buf strings.Builder
	statements := 0

	fmt.Fprintf(&buf, "defmodule MyApp.%s.Module%d do\n", ns, index)
	buf.WriteString("  @moduledoc false\n\n")

	for f := 0; f < functionsPerFile; f++ {
		noun := nouns[rand.Intn(len(nouns))]
		fmt.Fprintf(&buf, "  def handle_%s_%d(%s) do\n", noun, f, noun)

		// Mix different kinds of output statements
		switch rand.Intn(10) {
		case 0, 1, 2: // 30% - Single-line call
			fmt.Fprintf(&buf, "    IO.puts(%q)\n", messages[rand.Intn(len(messages))])
			statements++

		case 3: // 10% - Multi-line call
			buf.WriteString("    IO.puts(\n")
			fmt.Fprintf(&buf, "      \"%s: #{inspect(%s)}\"\n", messages[rand.Intn(len(messages))], noun)
			buf.WriteString("    )\n")
			statements++

		case 4: // 10% - Heredoc call
			buf.WriteString("    IO.puts(\"\"\"\n")
			fmt.Fprintf(&buf, "    %s\n", messages[rand.Intn(len(messages))])
			fmt.Fprintf(&buf, "    id: #{%s.id}\n", noun)
			buf.WriteString("    \"\"\")\n")
			statements++

		case 5: // 10% - Embedded in a case branch
			fmt.Fprintf(&buf, "    case %s do\n", noun)
			fmt.Fprintf(&buf, "      nil -> IO.puts(%q)\n", "missing")
			buf.WriteString("      _ -> :ok\n")
			buf.WriteString("    end\n")
			statements++

		case 6: // 10% - Already commented out
			fmt.Fprintf(&buf, "    # IO.puts(%q)\n", messages[rand.Intn(len(messages))])

		default: // 30% - No output at all
		}

		fmt.Fprintf(&buf, "    {:ok, %s}\n", noun)
		buf.WriteString("  end\n\n")
	}

	buf.WriteString("end\n")
	return buf.String(), statements
}
