package main

import (
	"errors"
	"io/fs"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

type Translations map[string]string

type Language struct {
	found bool
	tr    Translations
}

// TransPool loads <lang>.yaml files from fsys on first use.
type TransPool struct {
	fsys      fs.FS
	mutex     sync.Mutex
	languages map[string]*Language
}

func NewTransPool(fsys fs.FS) *TransPool {
	return &TransPool{
		fsys:      fsys,
		languages: make(map[string]*Language),
	}
}

func NewLanguage(tr Translations) *Language {
	return &Language{
		found: tr != nil,
		tr:    tr,
	}
}

func (tp *TransPool) Get(lang string) *Language {
	tp.mutex.Lock()
	defer tp.mutex.Unlock()
	l, ok := tp.languages[lang]
	if !ok {
		tr, _ := tp.load(lang)
		l = NewLanguage(tr)
		tp.languages[lang] = l
	}
	return l
}

func (tp *TransPool) load(lang string) (Translations, error) {
	if tp.fsys == nil {
		return nil, errors.New("no translations")
	}
	b, err := fs.ReadFile(tp.fsys, path.Join("translations", lang+".yaml"))
	if err != nil {
		return nil, err
	}
	var tr Translations
	if err := yaml.Unmarshal(b, &tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (l *Language) Lang(text string) string {
	if l == nil || !l.found {
		// Language was not found, return the string
		return text
	}
	res, ok := l.tr[text]
	if !ok {
		// Key was not found
		return text
	}
	// Return translated string
	return res
}
