package lessons

import (
	"fmt"
	"sort"
)

// Catalog is the read-only lesson dataset. Lessons keep the order they were
// loaded in.
type Catalog struct {
	lessons []Lesson
	byID    map[float64]int
}

func NewCatalog(lessons []Lesson) (*Catalog, error) {
	byID := make(map[float64]int, len(lessons))
	for i, l := range lessons {
		if _, dup := byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson %s", FormatID(l.ID))
		}
		for j, w := range l.Words {
			if w.Greek == "" {
				return nil, fmt.Errorf("lesson %s word %d: greek is empty", FormatID(l.ID), j+1)
			}
			if w.Russian == "" {
				return nil, fmt.Errorf("lesson %s word %d: russian is empty", FormatID(l.ID), j+1)
			}
		}
		byID[l.ID] = i
	}
	return &Catalog{lessons: lessons, byID: byID}, nil
}

// Lessons returns the lessons in dataset order. Callers must not modify them.
func (c *Catalog) Lessons() []Lesson {
	return c.lessons
}

func (c *Catalog) Lesson(id float64) (*Lesson, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.lessons[i], true
}

// Index returns the position of a lesson in dataset order, or -1.
func (c *Catalog) Index(id float64) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// Words returns pointers to the words of the given lessons, in dataset order.
// No ids means every lesson. Unknown ids are ignored.
func (c *Catalog) Words(ids ...float64) []*Word {
	var want map[float64]bool
	if len(ids) > 0 {
		want = make(map[float64]bool, len(ids))
		for _, id := range ids {
			want[id] = true
		}
	}
	var words []*Word
	for i := range c.lessons {
		l := &c.lessons[i]
		if want != nil && !want[l.ID] {
			continue
		}
		for j := range l.Words {
			words = append(words, &l.Words[j])
		}
	}
	return words
}

// Count returns the number of words in the catalog.
func (c *Catalog) Count() int {
	n := 0
	for _, l := range c.lessons {
		n += len(l.Words)
	}
	return n
}

// MenuItem points at a lesson by its dataset index.
type MenuItem struct {
	Index int
	Title string
	Count string
}

// Group collects the lessons sharing a main number. Groups with more than
// one lesson are collapsible.
type Group struct {
	Number      int
	Title       string
	Collapsible bool
	Items       []MenuItem
}

// Menu groups lessons by main number, sorted ascending.
func (c *Catalog) Menu() []Group {
	grouped := map[int]*Group{}
	var numbers []int
	for i, l := range c.lessons {
		n := MainNumber(l.ID)
		g, ok := grouped[n]
		if !ok {
			g = &Group{Number: n, Title: fmt.Sprintf("Урок %d", n)}
			grouped[n] = g
			numbers = append(numbers, n)
		}
		g.Items = append(g.Items, MenuItem{Index: i, Title: l.MenuTitle(), Count: l.CountLabel()})
	}
	sort.Ints(numbers)

	groups := make([]Group, 0, len(numbers))
	for _, n := range numbers {
		g := grouped[n]
		g.Collapsible = len(g.Items) > 1
		groups = append(groups, *g)
	}
	return groups
}
