// Package frontmatter extracts the YAML metadata block of a markdown document.
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/metadata"
)

// Delimiter is the line (after trimming whitespace) that opens and closes a block.
const Delimiter = "---"

// Extract returns the raw text between the first two delimiter lines.
//
// The opening delimiter does not have to be the first line. ok is false when
// no delimiter is found or the block is never closed. Line endings are
// normalized to \n; each returned line keeps its terminator.
func Extract(text string) (raw string, ok bool) {
	raw, _, ok = Split(text)
	return raw, ok
}

// Split is Extract that also returns the document without the block and its
// delimiter lines. When ok is false body is the normalized input.
func Split(text string) (raw, body string, ok bool) {
	text = normalizeNewlines(text)

	var header, rest strings.Builder
	inHeader := false
	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == Delimiter {
			if inHeader {
				rest.WriteString(strings.Join(lines[i+1:], ""))
				return header.String(), rest.String(), true
			}
			inHeader = true
			continue
		}
		if inHeader {
			header.WriteString(line)
		} else {
			rest.WriteString(line)
		}
	}
	return "", text, false
}

// Parse decodes a raw block into a record. An empty or null block yields a
// nil record and no error.
func Parse(raw string) (*metadata.Record, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "invalid front matter").Fatal().Build()
	}
	rec, err := metadata.FromYAMLNode(&doc)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "invalid front matter").Fatal().Build()
	}
	return rec, nil
}

// Read extracts and parses the metadata of a document and stamps it with the
// document's relative path under the filename key, replacing any value the
// author set. A nil record means the document has no metadata.
func Read(text, relPath string) (*metadata.Record, error) {
	raw, ok := Extract(text)
	if !ok {
		return nil, nil
	}
	rec, err := Parse(raw)
	if err != nil {
		if classified, isClassified := errors.AsClassified(err); isClassified {
			return nil, classified.WithContext("file", relPath)
		}
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	rec.Set(metadata.KeyFilename, metadata.String(relPath))
	return rec, nil
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
