// Package handlers contains application use case handlers.
package handlers

import (
	"fmt"
	"os"

	"github.com/ersonp/roster-resolve/internal/infrastructure/parsers"
)

// openParsed picks a parser for the file (by extension unless format is
// given) and hands the open file to fn.
func openParsed(filePath, format string, fn func(parsers.Parser, *os.File) error) error {
	var parser parsers.Parser
	if format == "" || format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(format)
	}

	if parser == nil {
		return fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return fn(parser, file)
}
