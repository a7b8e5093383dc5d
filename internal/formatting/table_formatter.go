package formatting

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter renders key/value and list tables with go-pretty.
type TableFormatter struct{}

// createTable creates a new table with standard styling
func createTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func (TableFormatter) FormatToken(token TokenView) (string, error) {
	t := createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("FIELD"),
		text.FgHiCyan.Sprint("VALUE"),
	})

	t.AppendRow(table.Row{"provider", token.Provider})
	t.AppendRow(table.Row{"lifetime", token.Lifetime})
	t.AppendRow(table.Row{"token_type", token.TokenType})
	t.AppendRow(table.Row{"access_token", token.AccessToken})
	if token.RefreshToken != "" {
		t.AppendRow(table.Row{"refresh_token", token.RefreshToken})
	}
	if token.Scope != "" {
		t.AppendRow(table.Row{"scope", token.Scope})
	}
	if token.IDToken != "" {
		t.AppendRow(table.Row{"id_token", Truncate(token.IDToken, 60)})
	}
	if !token.Expiry.IsZero() {
		t.AppendRow(table.Row{"expires", token.Expiry.Format(time.RFC3339) + " (" + FormatExpiry(token.Expiry) + ")"})
	}

	return t.Render() + "\n", nil
}

func (TableFormatter) FormatProviders(providers []ProviderView) (string, error) {
	if len(providers) == 0 {
		return text.FgYellow.Sprint("No providers found") + "\n", nil
	}

	t := createTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("LIFETIME"),
		text.FgHiCyan.Sprint("TOKEN URI"),
		text.FgHiCyan.Sprint("CREDENTIALS"),
	})

	for _, p := range providers {
		credentials := "basic"
		if p.CredentialsInBody {
			credentials = "basic+body"
		}
		t.AppendRow(table.Row{p.Name, p.Lifetime, p.TokenURI, credentials})
	}

	return t.Render() + "\n", nil
}
