package practice

import (
	"strings"

	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/lessons"
)

// Options are the quiz command flags.
type Options struct {
	Lessons []string
	Mode    string
}

// Selection parses the lesson ids. "all" or no ids selects every lesson.
func (o Options) Selection(c *lessons.Catalog) (flashcard.Selection, error) {
	var ids []float64
	for _, s := range o.Lessons {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "all") {
			return flashcard.All(), nil
		}
		id, err := lessons.ParseID(s)
		if err != nil {
			return flashcard.Selection{}, err
		}
		if _, ok := c.Lesson(id); !ok {
			return flashcard.Selection{}, &unknownLessonErr{id: id}
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return flashcard.All(), nil
	}
	return flashcard.Lessons(ids...), nil
}

// QuizMode parses the mode flag, falling back to def.
func (o Options) QuizMode(def string) (flashcard.Mode, error) {
	if o.Mode != "" {
		return flashcard.ParseMode(o.Mode)
	}
	return flashcard.ParseMode(def)
}

type unknownLessonErr struct {
	id float64
}

func (e *unknownLessonErr) Error() string {
	return "unknown lesson " + lessons.FormatID(e.id)
}
