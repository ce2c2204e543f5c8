package main

import (
	"io"
	"os"
	"strings"
)

// readSource reads a program file, "-" for standard input.
func readSource(path string) (string, error) {
	var content []byte
	var err error
	if path == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}
