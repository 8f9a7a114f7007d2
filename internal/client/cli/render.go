package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/socialprofile/internal/client/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	okColor    = color.New(color.FgHiGreen)
	warnColor  = color.New(color.FgHiYellow)
	errColor   = color.New(color.FgHiRed, color.Bold)
	titleColor = color.New(color.Bold, color.FgHiCyan)
)

const snippetLen = 60

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= snippetLen {
		return s
	}
	return string(r[:snippetLen-1]) + "…"
}

func dateOf(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("02.01.2006 15:04")
}

func renderPosts(w io.Writer, posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts yet.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Author", "Posted", "Content"})
	for _, p := range posts {
		author := p.UserName
		if author == "" {
			author = p.UserEmail
		}
		if author == "" {
			author = "user " + strconv.FormatInt(p.UserID, 10)
		}
		table.Append([]string{strconv.FormatInt(p.ID, 10), author, dateOf(p.CreatedAt), snippet(p.Content)})
	}
	table.Render()
}

func renderPost(w io.Writer, p models.Post) {
	titleColor.Fprintf(w, "Post #%d", p.ID)
	if d := dateOf(p.CreatedAt); d != "" {
		fmt.Fprintf(w, " (%s)", d)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Content)
}

func renderUsers(w io.Writer, users []models.UserSummary, deleted bool) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	header := []string{"#", "Name", "Email", "Location", "Role"}
	if deleted {
		header = []string{"#", "Name", "Email", "Deleted", "Reason"}
	}
	table.SetHeader(header)

	for _, u := range users {
		id := strconv.FormatInt(u.ID, 10)
		if deleted {
			var at string
			if u.DeletedAt != nil {
				at = dateOf(*u.DeletedAt)
			}
			table.Append([]string{id, u.Name, u.Email, at, u.DeletionReason})
			continue
		}

		row := []string{id, u.Name, u.Email, u.Location, "user"}
		if u.IsAdmin {
			row[4] = "admin"
			table.Rich(row, []tablewriter.Colors{{}, {tablewriter.Bold}, {}, {}, {tablewriter.FgHiGreenColor, tablewriter.Bold}})
			continue
		}
		table.Append(row)
	}
	table.Render()
}

func renderIdentity(w io.Writer, u models.Identity, initials, registered string) {
	titleColor.Fprintf(w, "[%s] %s", initials, u.Name)
	if u.IsAdmin {
		okColor.Fprint(w, " (admin)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Email:    %s\n", u.Email)
	if u.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", u.Location)
	}
	if u.Bio != "" {
		fmt.Fprintf(w, "Bio:      %s\n", u.Bio)
	}
	if registered != "" {
		fmt.Fprintf(w, "Joined:   %s\n", registered)
	}
}
