package wordset

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	sectionXPath = `//section[contains(concat(' ', normalize-space(@class), ' '), ' lesson-section ')]`
	cardXPath    = `.//*[contains(concat(' ', normalize-space(@class), ' '), ' word-card ')]`
	greekXPath   = `.//*[contains(concat(' ', normalize-space(@class), ' '), ' greek ')]`
	russianXPath = `.//*[contains(concat(' ', normalize-space(@class), ' '), ' russian ')]`
)

// ParseHTML reads lessons from a rendered vocabulary page: one
// section.lesson-section per lesson with an h2 heading and .word-card
// elements carrying data-greek and data-russian.
func ParseHTML(r io.Reader, contentType string) ([]lessons.Lesson, error) {
	cr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(cr)
	if err != nil {
		return nil, err
	}

	var ls []lessons.Lesson
	for i, sec := range htmlquery.Find(doc, sectionXPath) {
		var heading string
		if h2 := htmlquery.FindOne(sec, `.//h2`); h2 != nil {
			heading = utils.SpaceMap(utils.InnerTextWithOutChild(h2))
		}

		id := float64(i + 1)
		if v := htmlquery.SelectAttr(sec, "data-lesson"); v != "" {
			id, err = lessons.ParseID(v)
			if err != nil {
				return nil, fmt.Errorf("section %d: %w", i+1, err)
			}
		} else if v, ok := headingID(heading); ok {
			id = v
		}

		l := lessons.Lesson{ID: id, Title: titleFromHeading(heading, id)}
		for _, card := range htmlquery.Find(sec, cardXPath) {
			w := lessons.Word{
				Greek:   utils.SpaceMap(htmlquery.SelectAttr(card, "data-greek")),
				Russian: utils.SpaceMap(htmlquery.SelectAttr(card, "data-russian")),
			}
			if w.Greek == "" {
				w.Greek = nodeText(card, greekXPath)
			}
			if w.Russian == "" {
				w.Russian = nodeText(card, russianXPath)
			}
			if w.Greek == "" && w.Russian == "" {
				continue
			}
			l.Words = append(l.Words, w)
		}
		ls = append(ls, l)
	}
	return ls, nil
}

func nodeText(n *html.Node, expr string) string {
	found := htmlquery.FindOne(n, expr)
	if found == nil {
		return ""
	}
	return utils.SpaceMap(htmlquery.InnerText(found))
}

// headingID reads the id from an untitled heading such as "Урок 3.1".
func headingID(heading string) (float64, bool) {
	fields := strings.Fields(heading)
	if len(fields) != 2 || fields[0] != "Урок" {
		return 0, false
	}
	id, err := lessons.ParseID(fields[1])
	return id, err == nil
}

// titleFromHeading undoes lessons.Lesson.DisplayTitle.
func titleFromHeading(heading string, id float64) string {
	if heading == "" || heading == "Урок "+lessons.FormatID(id) {
		return ""
	}
	prefix := fmt.Sprintf("Урок %d: ", lessons.MainNumber(id))
	return strings.TrimPrefix(heading, prefix)
}
