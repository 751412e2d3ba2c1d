package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aquilax/postboard/board"
	"github.com/aquilax/postboard/post"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/feeds"
	"github.com/gorilla/mux"
	"github.com/sourcegraph/sitemap"
	"go.uber.org/zap"
)

const (
	feedItems       = 20
	shutdownTimeout = 5 * time.Second
)

type PostBoard struct {
	config   *Config
	log      *zap.Logger
	b        *board.Board
	tp       *TransPool
	sg       *SpamGuard
	validate *validator.Validate

	mutex sync.Mutex
	state board.State
}

type postForm struct {
	Text        string `validate:"required"`
	ReplyUserID string `validate:"max=64"`
	ReplyTextID string `validate:"max=64"`
}

type profileForm struct {
	Name        string `validate:"max=64"`
	Description string `validate:"max=512"`
}

func NewPostBoard(config *Config, log *zap.Logger, b *board.Board) (*PostBoard, error) {
	cooldown := time.Duration(0)
	if config.PostCooldown != "" {
		var err error
		if cooldown, err = time.ParseDuration(config.PostCooldown); err != nil {
			return nil, err
		}
	}
	p := &PostBoard{
		config:   config,
		log:      log,
		b:        b,
		tp:       NewTransPool(translationFS),
		sg:       NewSpamGuard(cooldown),
		validate: validator.New(),
	}
	profile, err := b.Profile()
	if err != nil {
		return nil, err
	}
	blocked, err := b.BlockList()
	if err != nil {
		return nil, err
	}
	p.dispatch(board.ProfileSaved{Profile: profile})
	p.dispatch(board.BlockListSaved{IDs: strings.Join(blocked, ",")})
	return p, nil
}

func (p *PostBoard) dispatch(e board.Event) board.State {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.state = board.Reduce(p.state, e)
	return p.state
}

func (p *PostBoard) current() board.State {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.state
}

func (p *PostBoard) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/", appHandler(p.indexHandler)).Methods("GET")
	r.Handle("/feed.xml", appHandler(p.feedHandler)).Methods("GET")
	r.Handle("/sitemap.xml", appHandler(p.sitemapHandler)).Methods("GET")
	r.Handle("/thread/{id}/{slug}", appHandler(p.threadHandler)).Methods("GET")

	r.Handle("/post", appHandler(p.postHandler)).Methods("POST")
	r.Handle("/like/{id}", appHandler(p.likeHandler)).Methods("POST")
	r.Handle("/unlike/{id}", appHandler(p.unlikeHandler)).Methods("POST")
	r.Handle("/user", appHandler(p.userHandler)).Methods("POST")
	r.Handle("/block", appHandler(p.blockHandler)).Methods("POST")
	return r
}

// Run serves until ctx is done.
func (p *PostBoard) Run(ctx context.Context) error {
	if err := p.b.Bootstrap(ctx); err != nil {
		p.log.Warn("identity bootstrap gave up", zap.Error(err))
	}
	srv := &http.Server{
		Addr:              p.config.Server,
		Handler:           p.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		p.log.Info("starting server", zap.String("addr", p.config.Server), zap.String("api", p.config.API))
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func getPageNumber(pageStr string) int {
	page := 1
	var err error
	if len(pageStr) != 0 {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = 1
		}
	}
	return page - 1
}

// reload fetches page and makes it the displayed snapshot. A failed load
// leaves the previous snapshot on screen.
func (p *PostBoard) reload(ctx context.Context, page int) board.State {
	s, err := p.b.Load(ctx, page)
	if err != nil {
		p.log.Warn("reload failed", zap.Int("page", page), zap.Error(err))
		return p.current()
	}
	return p.dispatch(board.Loaded{Snapshot: s})
}

// snapshot returns the displayed snapshot, loading the first page when
// nothing was loaded yet.
func (p *PostBoard) snapshot(ctx context.Context) board.Snapshot {
	st := p.current()
	if st.Loads == 0 {
		st = p.reload(ctx, 0)
	}
	return st.Snapshot
}

func (p *PostBoard) newSession() *Session {
	return NewSession(p.config, p.tp.Get(p.config.Language))
}

func (p *PostBoard) homeURL(page int, anchor string) string {
	u := "/"
	if page > 0 {
		u += "?page=" + strconv.Itoa(page+1)
	}
	if anchor != "" {
		u += "#" + anchor
	}
	return u
}

func (p *PostBoard) indexHandler(w http.ResponseWriter, r *http.Request) error {
	page := getPageNumber(r.URL.Query().Get("page"))
	st := p.reload(r.Context(), page)
	if replyID := r.URL.Query().Get("reply"); replyID != "" {
		if c, found := st.Snapshot.Comments.Find(replyID); found {
			st = p.dispatch(board.ReplyTo{Comment: c})
		}
	}
	s := p.newSession()
	s.SetPage(st.Snapshot.Page)
	s.SetReturn(p.homeURL(st.Snapshot.Page, ""))
	s.Set("State", st)
	s.Set("Threads", st.Snapshot.Threads)
	s.Set("Pagination", Pagination(PaginationConfig{
		page:    st.Snapshot.Page + 1,
		hasMore: st.Snapshot.HasMore,
		url:     "/",
		param:   "page",
	}))
	return s.render(w, "layout.html", "index.html", "comment.html", "form.html")
}

func (p *PostBoard) threadHandler(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["id"]
	page := getPageNumber(r.URL.Query().Get("page"))
	snap, err := p.b.Load(r.Context(), page)
	if err != nil {
		return HTTPError{Err: err, Message: "board unavailable", Code: http.StatusBadGateway}
	}
	root, found := post.FindThread(snap.Threads, id)
	if !found {
		return ErrNotFound
	}
	s := p.newSession()
	s.SetPage(page)
	s.SetReturn(r.URL.RequestURI())
	s.Set("Root", root)
	s.Set("Subtitle", post.Short(root.Text, slugSourceLen))
	return s.render(w, "layout.html", "thread.html", "comment.html")
}

func (p *PostBoard) postHandler(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	form := postForm{
		Text:        r.FormValue("text"),
		ReplyUserID: strings.TrimSpace(r.FormValue("reply_user_id")),
		ReplyTextID: strings.TrimSpace(r.FormValue("reply_text_id")),
	}
	st := p.current()
	f := st.Form
	f.Text, f.ReplyUserID, f.ReplyTextID = form.Text, form.ReplyUserID, form.ReplyTextID
	p.dispatch(board.FormChanged{Form: f})
	home := p.homeURL(st.Snapshot.Page, "")

	if err := p.validate.Struct(form); err != nil {
		p.log.Debug("post skipped", zap.Error(err))
		http.Redirect(w, r, home, http.StatusFound)
		return nil
	}
	if !p.sg.CanPost(remoteHost(r)) {
		p.log.Info("post throttled", zap.String("remote", remoteHost(r)))
		http.Redirect(w, r, home, http.StatusFound)
		return nil
	}
	posted, err := p.b.CreatePost(ctx, p.snapshot(ctx), board.PostInput{
		Text:        form.Text,
		ReplyUserID: form.ReplyUserID,
		ReplyTextID: form.ReplyTextID,
	})
	if err != nil {
		p.log.Warn("post failed", zap.Error(err))
	} else if posted {
		p.dispatch(board.PostSubmitted{})
	}
	http.Redirect(w, r, home, http.StatusFound)
	return nil
}

func (p *PostBoard) likeHandler(w http.ResponseWriter, r *http.Request) error {
	return p.putLike(w, r, p.b.Like)
}

func (p *PostBoard) unlikeHandler(w http.ResponseWriter, r *http.Request) error {
	return p.putLike(w, r, p.b.Unlike)
}

// putLike applies action to comment id as shown on the form's page, then
// returns to the page the form was on.
func (p *PostBoard) putLike(w http.ResponseWriter, r *http.Request, action func(context.Context, post.Comment) error) error {
	id := mux.Vars(r)["id"]
	page := getPageNumber(r.FormValue("page"))
	snap, err := p.b.Load(r.Context(), page)
	if err != nil {
		return HTTPError{Err: err, Message: "board unavailable", Code: http.StatusBadGateway}
	}
	c, found := snap.Comments.Find(id)
	if !found {
		return ErrNotFound
	}
	if err := action(r.Context(), c); err != nil {
		p.log.Warn("like failed", zap.String("id", id), zap.Error(err))
	}
	back := localURL(r.FormValue("return"), p.homeURL(page, ""))
	http.Redirect(w, r, back+"#C"+id, http.StatusFound)
	return nil
}

func (p *PostBoard) userHandler(w http.ResponseWriter, r *http.Request) error {
	form := profileForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	st := p.current()
	f := st.Form
	f.UserName, f.UserDescription = form.Name, form.Description
	p.dispatch(board.FormChanged{Form: f})
	home := p.homeURL(st.Snapshot.Page, "form")

	if err := p.validate.Struct(form); err != nil {
		p.log.Debug("profile skipped", zap.Error(err))
		http.Redirect(w, r, home, http.StatusFound)
		return nil
	}
	profile, err := p.b.SetProfile(r.Context(), form.Name, form.Description)
	if err != nil {
		p.log.Warn("set profile failed", zap.Error(err))
	} else {
		p.dispatch(board.ProfileSaved{Profile: profile})
	}
	http.Redirect(w, r, home, http.StatusFound)
	return nil
}

func (p *PostBoard) blockHandler(w http.ResponseWriter, r *http.Request) error {
	ids := strings.Split(r.FormValue("block_user_ids"), ",")
	if err := p.b.SetBlockList(ids); err != nil {
		return err
	}
	blocked, err := p.b.BlockList()
	if err != nil {
		return err
	}
	p.dispatch(board.BlockListSaved{IDs: strings.Join(blocked, ",")})
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

func (p *PostBoard) feedHandler(w http.ResponseWriter, r *http.Request) error {
	snap, err := p.b.Load(r.Context(), 0)
	if err != nil {
		return HTTPError{Err: err, Message: "board unavailable", Code: http.StatusBadGateway}
	}
	baseURL := "http://" + r.Host
	feed := &feeds.Feed{
		Title:       p.config.Title,
		Link:        &feeds.Link{Href: baseURL},
		Description: p.config.Description,
		Author:      &feeds.Author{Name: p.config.AuthorName, Email: p.config.AuthorEmail},
		Created:     time.Now(),
	}
	// newest first
	for i := len(snap.Comments) - 1; i >= 0 && len(feed.Items) < feedItems; i-- {
		c := snap.Comments[i]
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          c.ID,
			Title:       post.Short(c.Text, slugSourceLen),
			Link:        &feeds.Link{Href: baseURL + threadURL(c, 0)},
			Author:      &feeds.Author{Name: c.UserName},
			Description: renderText(c.Text),
			Created:     c.Created,
			Updated:     c.Updated,
		})
	}
	w.Header().Set("Content-Type", "application/rss+xml")
	return feed.WriteRss(w)
}

func (p *PostBoard) sitemapHandler(w http.ResponseWriter, r *http.Request) error {
	snap, err := p.b.Load(r.Context(), 0)
	if err != nil {
		return HTTPError{Err: err, Message: "board unavailable", Code: http.StatusBadGateway}
	}
	var urlSet sitemap.URLSet
	for _, t := range snap.Threads {
		lastMod := t.Updated
		urlSet.URLs = append(urlSet.URLs, sitemap.URL{
			Loc:        "http://" + r.Host + "/thread/" + t.ID + "/" + hfSlug(t.Text),
			LastMod:    &lastMod,
			ChangeFreq: sitemap.Daily,
			Priority:   0.7,
		})
	}
	xml, err := sitemap.Marshal(&urlSet)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/xml")
	_, err = w.Write(xml)
	return err
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
