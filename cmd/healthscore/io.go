package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chronos-health-scores/internal/service"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// readSource returns the bytes of a file, or of stdin when path is "-".
func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// isYAML decides the input syntax from the file extension, falling back to
// sniffing the first byte for stdin and unknown extensions.
func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json", ".jsonl":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '['
}

// readInput decodes a JSON or YAML document over dst. Fields absent from
// the document keep the values dst already holds; unknown fields are errors.
func readInput(stdin io.Reader, path string, dst any) error {
	data, err := readSource(stdin, path)
	if err != nil {
		return err
	}

	if !isYAML(path, data) {
		return service.DecodeInput(data, dst)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to decode input: %s is empty", path)
		}
		return fmt.Errorf("failed to decode input: %w", err)
	}
	return nil
}

// writeOutput renders v as indented JSON or YAML.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}
