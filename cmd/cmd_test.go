package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/wordset"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(t *testing.T) *lessons.Catalog {
	t.Helper()
	c, err := lessons.Default()
	require.NoError(t, err)
	return c
}

func TestPrintMenu(t *testing.T) {
	var buf bytes.Buffer
	printMenu(&buf, catalog(t))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	assert.Equal(t, "Урок 1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "    1.1   Приветствие"))
	assert.True(t, strings.HasSuffix(lines[1], "7 слов"))
	assert.True(t, strings.HasPrefix(lines[3], "2     Семья"), "single lessons are not grouped")
	assert.Contains(t, buf.String(), "4     Урок 4")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "999   Разное"))
}

func TestPrintSearch(t *testing.T) {
	var buf bytes.Buffer
	printSearch(&buf, "ΓΕΙΑ", catalog(t))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Урок 1: Приветствие\n"))
	assert.Contains(t, out, "γειά σας")
	assert.Contains(t, out, "3 слов · 1 уроков")

	buf.Reset()
	printSearch(&buf, "xyz", catalog(t))
	assert.Equal(t, "Ничего не найдено\n", buf.String())
}

func TestRunSet(t *testing.T) {
	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "/tmp/numbers.json", []byte(
		`[{"lesson": 5, "title": "Числа", "words": [{"greek": "δύο", "russian": "два"}]}]`), 0644))
	m, err := wordset.NewWordSetManage(memfs, "/sets")
	require.NoError(t, err)

	run := func(opt setOptions) string {
		var buf bytes.Buffer
		c := &cobra.Command{Use: "set"}
		c.SetOut(&buf)
		require.NoError(t, runSet(c, m, opt))
		return buf.String()
	}

	assert.Equal(t, "imported numbers: 1 lessons, 1 words\n", run(setOptions{Import: "/tmp/numbers.json"}))
	assert.Equal(t, "using numbers\n", run(setOptions{Use: "numbers"}))
	assert.Contains(t, run(setOptions{List: true}), "* numbers")
	assert.Contains(t, run(setOptions{Show: "numbers"}), "Урок 5: Числа")
	assert.Equal(t, "using built-in lessons\n", run(setOptions{Use: builtinSet}))
	assert.Equal(t, "deleted numbers\n", run(setOptions{Delete: "numbers"}))
	assert.Equal(t, "no sets imported\n", run(setOptions{List: true}))
}
