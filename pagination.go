package main

import (
	"net/url"
	"strconv"
)

type Page struct {
	Num int
	URL string
}

type Pages []Page

// PaginationConfig describes the displayed page. The API reports no totals,
// so the last known page is the current one, or the next one when the
// current page came back full.
type PaginationConfig struct {
	page    int
	hasMore bool
	url     string
	param   string
}

func Pagination(pc PaginationConfig) Pages {
	if pc.page < 1 {
		pc.page = 1
	}
	last := pc.page
	if pc.hasMore {
		last++
	}
	if last == 1 {
		return make(Pages, 0)
	}
	pUrl, _ := url.Parse(pc.url)
	val := pUrl.Query()

	pages := make(Pages, last)
	for i := 1; i <= last; i++ {
		// current page has no link
		tURL := ""
		if i != pc.page {
			val.Set(pc.param, strconv.Itoa(i))
			pUrl.RawQuery = val.Encode()
			tURL = pUrl.String()
		}
		pages[i-1] = Page{i, tURL}
	}
	return pages
}
