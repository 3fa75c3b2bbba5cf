// Command moveanno reads unified diff text and writes it back out annotated
// with moved-line cross-references, in ANSI color. It is a thin demonstration
// front end; see SPEC_FULL.md §12.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/moveanno/moveanno/internal/config"
	"github.com/moveanno/moveanno/internal/pipeline"
)

func main() {
	if err := Run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// Run executes the CLI: it reads a diff (from args[0] if present, else in),
// annotates it, and writes the rendered result to out.
func Run(args []string, in io.Reader, out io.Writer) error {
	r := in
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("moveanno: opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	next := func() (string, bool, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", false, err
			}
			return "", false, nil
		}
		return scanner.Text(), true, nil
	}

	reader := pipeline.New(next, config.Threshold())

	w := bufio.NewWriter(out)
	defer w.Flush()

	for {
		group, ok, err := reader.Next()
		if err != nil {
			return fmt.Errorf("moveanno: %w", err)
		}
		if !ok {
			return nil
		}
		for _, item := range group.Items {
			if _, err := fmt.Fprintln(w, item.Text.RenderANSI()); err != nil {
				return fmt.Errorf("moveanno: writing output: %w", err)
			}
		}
	}
}
