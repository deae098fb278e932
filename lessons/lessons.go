package lessons

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Word is one Greek–Russian pair.
type Word struct {
	Greek   string `yaml:"greek" json:"greek"`
	Russian string `yaml:"russian" json:"russian"`
}

// Lesson is an ordered group of words. Fractional ids mark sub-lessons (1.1, 1.2).
type Lesson struct {
	ID       float64 `yaml:"lesson" json:"lesson"`
	Title    string  `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string  `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Words    []Word  `yaml:"words" json:"words"`
}

// Lessons numbered 999 are appendices and keep their bare title.
const appendixNumber = 999

// MainNumber is the integer part of a lesson id.
func MainNumber(id float64) int {
	return int(math.Floor(id))
}

// FormatID prints an id without trailing zeros: 1, 1.1, 12.25.
func FormatID(id float64) string {
	return strconv.FormatFloat(id, 'f', -1, 64)
}

// ParseID is the inverse of FormatID.
func ParseID(s string) (float64, error) {
	id, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lesson id %q", s)
	}
	return id, nil
}

// MenuTitle is the short title used in the lesson menu.
func (l Lesson) MenuTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return "Урок " + FormatID(l.ID)
}

// DisplayTitle is the section heading. Titled lessons are prefixed with their
// main number, so sub-lesson 1.2 "Вежливость" reads "Урок 1: Вежливость".
func (l Lesson) DisplayTitle() string {
	if l.Title == "" {
		return "Урок " + FormatID(l.ID)
	}
	main := MainNumber(l.ID)
	if main == appendixNumber {
		return l.Title
	}
	if hasLessonPrefix(l.Title) {
		return l.Title
	}
	return fmt.Sprintf("Урок %d: %s", main, l.Title)
}

// CountLabel is the word counter shown next to a menu item.
func (l Lesson) CountLabel() string {
	return fmt.Sprintf("%d слов", len(l.Words))
}

func hasLessonPrefix(title string) bool {
	fields := strings.Fields(title)
	return len(fields) > 1 && strings.EqualFold(fields[0], "Урок")
}
