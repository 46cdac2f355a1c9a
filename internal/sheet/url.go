package sheet

import (
	"regexp"
	"strings"
)

var (
	gidRe     = regexp.MustCompile(`[?&]gid=(\d+)`)
	gidPairRe = regexp.MustCompile(`gid=\d+`)
	sheetIDRe = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
)

// BuildCSVURL points a Google Sheets URL at one tab (gid) in CSV form.
// An empty gid keeps the gid already in the URL, or the first tab.
func BuildCSVURL(base, gid string) string {
	if gid == "" {
		if m := gidRe.FindStringSubmatch(base); m != nil {
			gid = m[1]
		} else {
			gid = "0"
		}
	}

	switch {
	case strings.Contains(base, "/pub?"):
		if strings.Contains(base, "gid=") {
			return replaceFirstGID(base, gid)
		}
		return base + querySep(base) + "gid=" + gid + "&single=true&output=csv"
	case strings.Contains(base, "/export"):
		if strings.Contains(base, "gid=") {
			return replaceFirstGID(base, gid)
		}
		return base + querySep(base) + "gid=" + gid
	case strings.Contains(base, "/edit"):
		if m := sheetIDRe.FindStringSubmatch(base); m != nil {
			return "https://docs.google.com/spreadsheets/d/" + m[1] + "/export?format=csv&gid=" + gid
		}
	}
	return base
}

// EditToExport rewrites an editor link into its CSV export link.
func EditToExport(u string) string {
	u = strings.Replace(u, "/edit#gid=0", "/export?format=csv", 1)
	return strings.Replace(u, "/edit", "/export?format=csv", 1)
}

func replaceFirstGID(u, gid string) string {
	loc := gidPairRe.FindStringIndex(u)
	if loc == nil {
		return u
	}
	return u[:loc[0]] + "gid=" + gid + u[loc[1]:]
}

func querySep(u string) string {
	if strings.Contains(u, "?") {
		return "&"
	}
	return "?"
}
