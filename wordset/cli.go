package wordset

import (
	"fmt"
	"io"

	"github.com/lai323/lexis/lessons"
)

func PrintList(w io.Writer, m WordSetManage) error {
	infos, err := m.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(w, "no sets imported")
		return nil
	}
	for _, info := range infos {
		mark := " "
		if info.Current {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-30s%4d lessons %6d words\n", mark, info.Name, info.Lessons, info.Words)
	}
	return nil
}

func PrintShow(w io.Writer, m WordSetManage, name string) error {
	c, err := m.Load(name)
	if err != nil {
		return err
	}
	PrintCatalog(w, c)
	return nil
}

// PrintCatalog prints every lesson heading followed by its words.
func PrintCatalog(w io.Writer, c *lessons.Catalog) {
	for _, l := range c.Lessons() {
		fmt.Fprintln(w, l.DisplayTitle())
		for _, word := range l.Words {
			fmt.Fprintf(w, "    %-30s%s\n", word.Greek, word.Russian)
		}
	}
}
