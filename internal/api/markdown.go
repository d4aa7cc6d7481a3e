package api

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md renders summary text for the page. Raw HTML in the input is dropped,
// so food names from the dataset cannot inject markup.
var md = goldmark.New(goldmark.WithExtensions(extension.Table))

func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
