package cmd

import (
	"fmt"
	"io"

	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/search"
)

func printMenu(w io.Writer, c *lessons.Catalog) {
	ls := c.Lessons()
	for _, g := range c.Menu() {
		indent := ""
		if g.Collapsible {
			fmt.Fprintln(w, g.Title)
			indent = "    "
		}
		for _, item := range g.Items {
			id := lessons.FormatID(ls[item.Index].ID)
			fmt.Fprintf(w, "%s%-6s%-30s%s\n", indent, id, item.Title, item.Count)
		}
	}
}

func printSearch(w io.Writer, query string, c *lessons.Catalog) {
	res := search.Filter(query, c.Lessons())
	if res.Matched == 0 {
		fmt.Fprintln(w, "Ничего не найдено")
		return
	}
	for _, sec := range res.Sections {
		if !sec.Visible {
			continue
		}
		fmt.Fprintln(w, sec.Lesson.DisplayTitle())
		for j, ok := range sec.Matches {
			if ok {
				word := sec.Lesson.Words[j]
				fmt.Fprintf(w, "    %-30s%s\n", word.Greek, word.Russian)
			}
		}
	}
	fmt.Fprintf(w, "\n%d слов · %d уроков\n", res.Matched, res.VisibleSections())
}
