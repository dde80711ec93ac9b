// Package source reads the documents fed to the pipeline.
package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Document is a named input text.
type Document struct {
	Name string
	Text string
}

// IsHTML reports whether path looks like an HTML document.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	default:
		return false
	}
}

// ReadFile reads the document at path. The visible text is extracted when the file is HTML,
// either by extension or because forceHTML is set.
func ReadFile(path string, forceHTML bool) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	return Read(path, file, forceHTML || IsHTML(path))
}

// Read reads a document from rd.
func Read(name string, rd io.Reader, isHTML bool) (Document, error) {
	if isHTML {
		text, err := ExtractText(rd)
		if err != nil {
			return Document{}, errors.Wrapf(err, "unable to extract text from %s", name)
		}

		return Document{Name: name, Text: text}, nil
	}

	data, err := io.ReadAll(rd)
	if err != nil {
		return Document{}, errors.Wrapf(err, "unable to read %s", name)
	}

	return Document{Name: name, Text: string(data)}, nil
}

// ExtractText returns the visible text of an HTML document with whitespace collapsed.
// Script, style and template contents are dropped.
func ExtractText(rd io.Reader) (string, error) {
	doc, err := html.Parse(rd)
	if err != nil {
		return "", errors.Wrap(err, "unable to parse html")
	}

	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}
