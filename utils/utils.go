package utils

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func FmtErrorf(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// InnerTextWithOutChild returns the text directly under n, skipping the
// text of child elements.
func InnerTextWithOutChild(n *html.Node) string {
	var buf bytes.Buffer
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			buf.WriteString(child.Data)
		}
	}
	return buf.String()
}

// SpaceMap folds every run of whitespace into one space and trims the ends.
func SpaceMap(str string) string {
	return strings.Join(strings.FieldsFunc(str, unicode.IsSpace), " ")
}
