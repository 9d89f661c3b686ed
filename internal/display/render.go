// SPDX-License-Identifier: Apache-2.0

package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Format selects the output renderer.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Render writes result (path -> epoch seconds) to w in the requested
// format. Rendering is explicitly outside the core walker per spec.md §6;
// this is the CLI's own concern.
func Render(w io.Writer, result map[string]int64, format Format) error {
	switch format {
	case FormatText:
		return renderText(w, result)
	case FormatJSON, "":
		return renderJSON(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, result map[string]int64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderText(w io.Writer, result map[string]int64) error {
	paths := make([]string, 0, len(result))
	for p := range result {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		label := colorer(p, green)
		epoch := colorer(fmt.Sprintf("%d", result[p]), yellow)
		if _, err := fmt.Fprintf(w, "%s %s\n", label, epoch); err != nil {
			return err
		}
	}
	return nil
}
