// Package board runs the load/assemble cycle against the remote API and
// performs the mutating actions of the local user.
package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aquilax/postboard/api"
	"github.com/aquilax/postboard/database"
	"github.com/aquilax/postboard/post"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit = 100

	bootstrapAttempts = 3
	bootstrapBackoff  = time.Second
)

// Snapshot is one assembled view of the board.
type Snapshot struct {
	Users    []post.User
	Comments post.CommentList
	Threads  []post.Thread
	Page     int
	Limit    int
	// HasMore is set when the page was full, so an older page may exist.
	HasMore bool
	Loaded  time.Time
}

// PostInput is what the user typed into the post form. Reply ids may be
// short prefixes.
type PostInput struct {
	Text        string
	ReplyUserID string
	ReplyTextID string
}

// Profile is the local user's identity.
type Profile struct {
	Name        string
	Description string
	UserID      post.UserID
}

type Board struct {
	client api.Client
	prefs  database.Database
	log    *zap.Logger
	limit  int
	loc    *time.Location
}

func New(client api.Client, prefs database.Database, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{
		client: client,
		prefs:  prefs,
		log:    log,
		limit:  DefaultLimit,
		loc:    time.Local,
	}
}

// WithLimit sets the number of texts fetched per page.
func (b *Board) WithLimit(limit int) *Board {
	if limit > 0 {
		b.limit = limit
	}
	return b
}

// WithLocation sets the time zone of displayed dates.
func (b *Board) WithLocation(loc *time.Location) *Board {
	if loc != nil {
		b.loc = loc
	}
	return b
}

// Load fetches every collection and assembles page (zero based). Users are
// fetched first since the block list is resolved against them.
func (b *Board) Load(ctx context.Context, page int) (Snapshot, error) {
	if page < 0 {
		page = 0
	}
	users, err := b.client.Users(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load users: %w", err)
	}
	blocked, err := b.BlockList()
	if err != nil {
		return Snapshot{}, err
	}

	q := api.TextQuery{Limit: b.limit, Skip: page * b.limit}
	for _, short := range blocked {
		q.ExcludeUserIDs = append(q.ExcludeUserIDs, post.ResolveUserID(short, users))
	}

	c := post.Collections{Users: users}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if c.Likes, err = b.client.Likes(gctx); err != nil {
			return fmt.Errorf("load likes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if c.Images, err = b.client.Images(gctx); err != nil {
			return fmt.Errorf("load images: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if c.Posts, err = b.client.Texts(gctx, q); err != nil {
			return fmt.Errorf("load texts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	comments := post.Assemble(c, b.loc)
	b.log.Debug("board loaded",
		zap.Int("page", page),
		zap.Int("users", len(users)),
		zap.Int("texts", len(comments)),
		zap.Int("blocked", len(q.ExcludeUserIDs)))
	return Snapshot{
		Users:    users,
		Comments: comments,
		Threads:  post.BuildTree(comments),
		Page:     page,
		Limit:    b.limit,
		HasMore:  len(c.Posts) >= b.limit,
		Loaded:   time.Now(),
	}, nil
}

// CreatePost submits in. Short reply ids are resolved against the snapshot
// being displayed; an id that resolves to nothing is not sent. Empty text
// submits nothing and reports false.
func (b *Board) CreatePost(ctx context.Context, s Snapshot, in PostInput) (bool, error) {
	if in.Text == "" {
		return false, nil
	}
	t := api.NewText{
		Text:            in.Text,
		InReplyToUserID: post.ResolveUserID(in.ReplyUserID, s.Users),
		InReplyToTextID: post.ResolveCommentID(in.ReplyTextID, s.Comments),
	}
	p, err := b.client.CreateText(ctx, t)
	if err != nil {
		return false, fmt.Errorf("create text: %w", err)
	}
	b.log.Info("text created",
		zap.String("id", p.ID),
		zap.String("reply_user", t.InReplyToUserID),
		zap.String("reply_text", t.InReplyToTextID))
	return true, nil
}

// Like writes the comment's count plus one. The count is absolute: a like
// from another client since the last load is overwritten.
func (b *Board) Like(ctx context.Context, c post.Comment) error {
	return b.putLike(ctx, c, c.LikeCount+1)
}

// Unlike writes the comment's count minus one.
func (b *Board) Unlike(ctx context.Context, c post.Comment) error {
	return b.putLike(ctx, c, c.LikeCount-1)
}

func (b *Board) putLike(ctx context.Context, c post.Comment, count int) error {
	if _, err := b.client.PutLike(ctx, c.ID, count); err != nil {
		return fmt.Errorf("put like %s: %w", c.ID, err)
	}
	b.log.Info("like updated", zap.String("id", c.ID), zap.Int("count", count))
	return nil
}

// SetProfile registers a new remote user and remembers it as the local
// identity. Nothing is stored when registration fails.
func (b *Board) SetProfile(ctx context.Context, name, description string) (Profile, error) {
	u, err := b.client.CreateUser(ctx, name, description)
	if err != nil {
		return Profile{}, fmt.Errorf("create user: %w", err)
	}
	p := Profile{Name: name, Description: description, UserID: u.ID}
	if err := b.saveProfile(p); err != nil {
		return Profile{}, err
	}
	b.log.Info("user created", zap.String("id", u.ID), zap.String("name", name))
	return p, nil
}

func (b *Board) saveProfile(p Profile) error {
	for key, value := range map[string]string{
		database.KeyUserName: p.Name,
		database.KeyUserDesc: p.Description,
		database.KeyUserID:   p.UserID,
	} {
		if err := b.prefs.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Profile returns the stored identity; missing keys read as "".
func (b *Board) Profile() (Profile, error) {
	var p Profile
	var err error
	if p.Name, err = database.GetDefault(b.prefs, database.KeyUserName, ""); err != nil {
		return p, err
	}
	if p.Description, err = database.GetDefault(b.prefs, database.KeyUserDesc, ""); err != nil {
		return p, err
	}
	p.UserID, err = database.GetDefault(b.prefs, database.KeyUserID, "")
	return p, err
}

// Bootstrap registers a stored name that has no remote user id yet.
// Transient failures are retried a few times.
func (b *Board) Bootstrap(ctx context.Context) error {
	p, err := b.Profile()
	if err != nil {
		return err
	}
	if p.Name == "" || p.UserID != "" {
		return nil
	}
	return api.WithRetry(ctx, bootstrapAttempts, bootstrapBackoff, func(ctx context.Context) error {
		_, err := b.SetProfile(ctx, p.Name, p.Description)
		if err != nil {
			b.log.Warn("identity bootstrap failed", zap.Error(err))
		}
		return err
	})
}

// BlockList returns the stored short ids of blocked users.
func (b *Board) BlockList() ([]string, error) {
	v, err := database.GetDefault(b.prefs, database.KeyBlockUserIDs, "")
	if err != nil {
		return nil, fmt.Errorf("read block list: %w", err)
	}
	if v == "" {
		return nil, nil
	}
	return strings.Split(v, ","), nil
}

// SetBlockList stores ids as given, comma separated. An empty list stops
// filtering.
func (b *Board) SetBlockList(ids []string) error {
	var clean []string
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	return b.prefs.Set(database.KeyBlockUserIDs, strings.Join(clean, ","))
}
