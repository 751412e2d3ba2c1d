package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aquilax/postboard/post"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const indentWidth = 2

var headerStyle = lipgloss.NewStyle().Bold(true)

// printTree writes threads depth first, each reply indented one step more
// than its parent.
func printTree(w io.Writer, threads []post.Thread, plain bool) error {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(72)}
	if plain {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	for _, t := range threads {
		t.Walk(func(n post.Thread) {
			if err != nil {
				return
			}
			var body string
			if body, err = r.Render(n.Text); err != nil {
				return
			}
			block := headerStyle.Render(commentHeader(n.Comment)) + "\n" + strings.Trim(body, "\n")
			_, err = fmt.Fprintln(w, lipgloss.NewStyle().PaddingLeft(n.Level*indentWidth).Render(block))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func commentHeader(c post.Comment) string {
	var sb strings.Builder
	sb.WriteString(hfDate(c) + " [" + hfShortText(c.ID) + "]")
	if c.LikeCount != 0 {
		sb.WriteString(" +" + strconv.Itoa(c.LikeCount))
	}
	sb.WriteString("\n" + c.UserName + " [" + hfShortUser(c.UserID) + "]")
	if r := hfReply(c); r != "" {
		sb.WriteString("\n" + r)
	}
	return sb.String()
}
