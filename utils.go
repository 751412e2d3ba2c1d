package main

import (
	"crypto/md5"
	"encoding/hex"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/aquilax/postboard/post"
	"github.com/aquilax/tripcode"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

const (
	shortUserIDLen = 10
	shortTextIDLen = 8
	slugSourceLen  = 40
)

var (
	angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")
	policy       = bluemonday.UGCPolicy().AddTargetBlankToFullyQualifiedLinks(true)
)

func hfSlug(s string) string {
	sl := slug.Make(post.Short(s, slugSourceLen))
	if sl == "" {
		sl = "thread"
	}
	return sl + ".html"
}

func hfShortUser(id string) string {
	return post.Short(id, shortUserIDLen)
}

func hfShortText(id string) string {
	return post.Short(id, shortTextIDLen)
}

func getTripCode(s string) string {
	return tripcode.Tripcode(s)
}

// hfDate is the created time, followed by the updated time when they differ.
func hfDate(c post.Comment) string {
	if !c.Edited() {
		return c.CreatedAt
	}
	return c.CreatedAt + "|" + c.UpdatedAt
}

// hfReply is the TO:/REPLY: line of a comment, "" for a plain post.
func hfReply(c post.Comment) string {
	switch {
	case c.ReplyToUserName == "" && c.ReplyToTextID == "":
		return ""
	case c.ReplyToTextID == "":
		return "TO:" + c.ReplyToUserName
	case c.ReplyToUserName == "":
		return "REPLY:" + c.ReplyToTextID
	default:
		return "TO:" + c.ReplyToUserName + " REPLY:" + c.ReplyToTextID
	}
}

// hfImage accepts data:image URIs and http(s) URLs only.
func hfImage(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://") {
		return template.URL(src)
	}
	return ""
}

// threadURL links to the thread holding c, anchored at c.
func threadURL(c post.Comment, page int) string {
	u := "/thread/" + c.ID + "/" + hfSlug(c.Text)
	if page > 0 {
		u += "?page=" + strconv.Itoa(page+1)
	}
	return u + "#C" + c.ID
}

// replyURL opens the post form on page with the reply inputs set to c.
func replyURL(c post.Comment, page int) string {
	u := "/?"
	if page > 0 {
		u += "page=" + strconv.Itoa(page+1) + "&"
	}
	return u + "reply=" + url.QueryEscape(c.ID) + "#form"
}

// localURL returns u when it is a path on this site, def otherwise. The
// fragment is dropped.
func localURL(u, def string) string {
	p, err := url.Parse(u)
	if err != nil || p.Scheme != "" || p.Host != "" || !strings.HasPrefix(p.Path, "/") || strings.HasPrefix(u, "//") {
		return def
	}
	p.Fragment = ""
	return p.String()
}

// renderText turns post text into sanitized HTML. Raw HTML is shown as
// text, every newline is a line break and external links open a new tab.
func renderText(t string) string {
	extensions := blackfriday.NoIntraEmphasis |
		blackfriday.Tables |
		blackfriday.FencedCode |
		blackfriday.Autolink |
		blackfriday.Strikethrough |
		blackfriday.SpaceHeadings |
		blackfriday.HeadingIDs |
		blackfriday.HardLineBreak

	htmlFlags := blackfriday.UseXHTML | blackfriday.HrefTargetBlank

	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: htmlFlags})
	unsafe := blackfriday.Run([]byte(angleEscaper.Replace(t)),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(extensions))
	return string(policy.SanitizeBytes(unsafe))
}

func hfMarkdown(t string) template.HTML {
	return template.HTML(renderText(t))
}

func hfGravatar(tripcode string) string {
	if tripcode == "" {
		return "http://www.gravatar.com/avatar/00000000000000000000000000000000?d=retro"
	}
	hash := md5.Sum([]byte(tripcode))
	return "http://www.gravatar.com/avatar/" + hex.EncodeToString(hash[:]) + "?d=retro"
}

// hfAvatar derives an avatar from the author id. Names are not unique, the
// avatar tells authors apart.
func hfAvatar(userID string) string {
	if userID == "" {
		return hfGravatar("")
	}
	return hfGravatar(getTripCode(userID))
}
