package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ErrEmptySummary is returned when no text can be recovered from a summary fragment.
var ErrEmptySummary = errors.New("summary has no text")

// FirstParagraph returns the text of the first content node of the first <p>
// element in an HTML fragment.
//
// Feeds that ship plain text, or HTML without paragraphs, fall back to the
// readability text content and finally to the document text.
func FirstParagraph(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse summary HTML: %w", err)
	}

	if p := doc.Find("p").First(); p.Length() > 0 {
		if text := strings.TrimSpace(p.Contents().First().Text()); text != "" {
			return text, nil
		}
	}

	if article, err := readability.FromReader(strings.NewReader(htmlContent), nil); err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text, nil
		}
	}

	if text := strings.TrimSpace(doc.Text()); text != "" {
		return text, nil
	}

	return "", ErrEmptySummary
}
