// Package wordset stores lesson sets imported by the user. Every set is a
// YAML dataset file in the storage dir; one of them can be marked current
// and then replaces the built-in lessons.
package wordset

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/utils"
	"github.com/spf13/afero"
)

const (
	setExt      = ".yaml"
	currentFile = ".current"
)

var validname = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// Info summarizes a stored set.
type Info struct {
	Name    string
	Lessons int
	Words   int
	Current bool
}

type WordSetManage struct {
	fs         afero.Fs
	StorageDir string
}

func NewWordSetManage(fs afero.Fs, dir string) (WordSetManage, error) {
	err := fs.MkdirAll(dir, 0755)
	if err != nil {
		err = utils.FmtErrorf("WordSet MkdirAll", err)
	}
	return WordSetManage{fs: fs, StorageDir: dir}, err
}

func (m WordSetManage) fileName(name string) string {
	return path.Join(m.StorageDir, name+setExt)
}

// Path returns the dataset file of a set.
func (m WordSetManage) Path(name string) string {
	return m.fileName(name)
}

func (m WordSetManage) Exist(name string) (bool, error) {
	return afero.Exists(m.fs, m.fileName(name))
}

// Import reads src (HTML, YAML or JSON), validates it and stores it as
// name. An empty name is taken from the file name.
func (m WordSetManage) Import(src, name string) (Info, error) {
	if name == "" {
		name = strings.Split(path.Base(src), ".")[0]
	}
	if !validname.MatchString(name) {
		return Info{}, fmt.Errorf("invalid set name %q", name)
	}
	exist, err := m.Exist(name)
	if err != nil {
		return Info{}, err
	}
	if exist {
		return Info{}, fmt.Errorf("set %s already exist", name)
	}

	data, err := afero.ReadFile(m.fs, src)
	if err != nil {
		return Info{}, utils.FmtErrorf("read file "+src, err)
	}
	var ls []lessons.Lesson
	switch strings.ToLower(path.Ext(src)) {
	case ".html", ".htm":
		ls, err = ParseHTML(bytes.NewReader(data), "text/html")
	default:
		ls, err = lessons.Parse(data)
	}
	if err != nil {
		return Info{}, utils.FmtErrorf("import "+src, err)
	}
	if len(ls) == 0 {
		return Info{}, fmt.Errorf("import %s: no lessons found", src)
	}
	if _, err := lessons.NewCatalog(ls); err != nil {
		return Info{}, utils.FmtErrorf("import "+src, err)
	}

	f, err := m.fs.Create(m.fileName(name))
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	if err := lessons.Encode(f, ls); err != nil {
		return Info{}, utils.FmtErrorf("write set "+name, err)
	}
	return summarize(name, ls), nil
}

// Load returns the lessons of a stored set.
func (m WordSetManage) Load(name string) (*lessons.Catalog, error) {
	exist, err := m.Exist(name)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, fmt.Errorf("set %s not exist", name)
	}
	return lessons.LoadFile(m.fs, m.fileName(name))
}

func (m WordSetManage) List() ([]Info, error) {
	files, err := afero.ReadDir(m.fs, m.StorageDir)
	if err != nil {
		return nil, err
	}
	current, err := m.Current()
	if err != nil {
		return nil, err
	}
	var infos []Info
	for _, f := range files {
		if f.IsDir() || path.Ext(f.Name()) != setExt {
			continue
		}
		name := strings.TrimSuffix(f.Name(), setExt)
		c, err := m.Load(name)
		if err != nil {
			return nil, err
		}
		info := summarize(name, c.Lessons())
		info.Current = name == current
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (m WordSetManage) Delete(name string) error {
	exist, err := m.Exist(name)
	if err != nil {
		return err
	}
	if !exist {
		return fmt.Errorf("set %s not exist", name)
	}
	current, err := m.Current()
	if err != nil {
		return err
	}
	if current == name {
		if err := m.Use(""); err != nil {
			return err
		}
	}
	return m.fs.Remove(m.fileName(name))
}

// Use marks a set as current. An empty name goes back to the built-in
// lessons.
func (m WordSetManage) Use(name string) error {
	marker := path.Join(m.StorageDir, currentFile)
	if name == "" {
		err := m.fs.Remove(marker)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	exist, err := m.Exist(name)
	if err != nil {
		return err
	}
	if !exist {
		return fmt.Errorf("set %s not exist", name)
	}
	return afero.WriteFile(m.fs, marker, []byte(name+"\n"), 0644)
}

// Current returns the name of the current set, or "" for the built-in
// lessons.
func (m WordSetManage) Current() (string, error) {
	data, err := afero.ReadFile(m.fs, path.Join(m.StorageDir, currentFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Catalog loads the current set, or the built-in lessons when none is
// current.
func (m WordSetManage) Catalog() (*lessons.Catalog, error) {
	name, err := m.Current()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return lessons.Default()
	}
	return m.Load(name)
}

func summarize(name string, ls []lessons.Lesson) Info {
	info := Info{Name: name, Lessons: len(ls)}
	for _, l := range ls {
		info.Words += len(l.Words)
	}
	return info
}
