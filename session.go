package main

import (
	"html/template"
	"net/http"
	"path"

	"github.com/aquilax/postboard/post"
)

type Session struct {
	td       TemplateData
	ln       *Language
	page     int
	returnTo string
}

type TemplateData map[string]interface{}

func NewSession(c *Config, ln *Language) *Session {
	return &Session{
		td: NewTemplateData(c),
		ln: ln,
	}
}

func NewTemplateData(c *Config) TemplateData {
	td := make(TemplateData)
	td.Set("Title", c.Title)
	td.Set("Description", c.Description)
	td.Set("Subtitle", "")
	return td
}

func (s *Session) getHelpers() template.FuncMap {
	return template.FuncMap{
		"lang":      s.Lang,
		"date":      hfDate,
		"reply":     hfReply,
		"slug":      hfSlug,
		"shortUser": hfShortUser,
		"shortText": hfShortText,
		"markdown":  hfMarkdown,
		"image":     hfImage,
		"avatar":    hfAvatar,
		"tripcode":  getTripCode,
		"link":      s.link,
		"replyURL":  s.replyURL,
		"pageNum":   s.pageNum,
		"back":      s.back,
	}
}

// SetPage sets the zero based page that thread links point into.
func (s *Session) SetPage(page int) {
	s.page = page
	s.Set("Page", page)
}

// SetReturn sets the local URL that like forms come back to.
func (s *Session) SetReturn(u string) {
	s.returnTo = u
}

func (s *Session) link(c post.Comment) string {
	return threadURL(c, s.page)
}

func (s *Session) replyURL(c post.Comment) string {
	return replyURL(c, s.page)
}

func (s *Session) back() string {
	return s.returnTo
}

func (s *Session) pageNum() int {
	return s.page + 1
}

func (s *Session) Lang(text string) string {
	return s.ln.Lang(text)
}

// render executes layout.html with the named templates from templates/.
func (s *Session) render(w http.ResponseWriter, names ...string) error {
	patterns := make([]string, len(names))
	for i, n := range names {
		patterns[i] = path.Join("templates", n)
	}
	t, err := template.New("layout.html").Funcs(s.getHelpers()).ParseFS(templateFS, patterns...)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.Execute(w, s.td)
}

func (td TemplateData) Set(name string, value interface{}) {
	td[name] = value
}

func (s *Session) Set(name string, value interface{}) {
	s.td.Set(name, value)
}
