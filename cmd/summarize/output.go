package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"article-summarizer/internal/usecase/summarize"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func isOutputFormat(s string) bool {
	switch s {
	case outputText, outputJSON, outputYAML:
		return true
	}
	return false
}

func writeResult(w io.Writer, format string, res *summarize.Result, previewLength int) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintf(w, "Original Article (first %d chars):\n%s\n\nSummary:\n%s\n",
			previewLength, res.Preview, res.Summary)
		return err
	}
}
