package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"fansly-utils/core/snapshot"
)

// Row is one account in the rendered table.
type Row struct {
	ID          string
	Username    string
	DisplayName string
	OldNames    string
	Deleted     bool
	Following   bool
	Memberships []bool
	Notes       []snapshot.NoteRecord
}

// Page is the full template payload.
type Page struct {
	Labels []string
	Rows   []Row
}

// Writer renders a snapshot into a static HTML table.
type Writer struct {
	log *zap.Logger
}

func NewWriter(log *zap.Logger) *Writer {
	return &Writer{log: log}
}

// Write renders the snapshot and stores the page next to the snapshot file,
// returning the path of the generated page.
func (w *Writer) Write(snap *snapshot.Snapshot, snapshotPath string) (string, error) {
	path := htmlPath(snapshotPath)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := Render(f, snap); err != nil {
		return "", err
	}

	w.log.Info("report generated",
		zap.String("path", path),
		zap.Int("accounts", len(snap.Accounts)),
		zap.Int("lists", len(snap.Lists)))
	return path, nil
}

// Render writes the report page for the snapshot to w.
func Render(w io.Writer, snap *snapshot.Snapshot) error {
	if err := pageTemplate.Execute(w, buildPage(snap)); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func htmlPath(snapshotPath string) string {
	base := strings.TrimSuffix(snapshotPath, filepath.Ext(snapshotPath))
	return base + ".html"
}

func buildPage(snap *snapshot.Snapshot) Page {
	labels := make([]string, 0, len(snap.Lists))
	for _, list := range snap.Lists {
		labels = append(labels, list.Label)
	}
	sort.Strings(labels)

	members := make([]map[string]struct{}, len(labels))
	for i, label := range labels {
		list := snap.ListByLabel(label)
		members[i] = make(map[string]struct{}, len(list.Items))
		for _, id := range list.Items {
			members[i][id] = struct{}{}
		}
	}

	deleted := snap.DeletedSet()
	following := make(map[string]struct{}, len(snap.Following))
	for _, id := range snap.Following {
		following[id] = struct{}{}
	}

	rows := make([]Row, 0, len(snap.Accounts))
	for _, account := range snap.Accounts {
		row := Row{
			ID:          account.ID,
			Username:    account.Username,
			DisplayName: account.DisplayName,
			OldNames:    strings.Join(account.OldNames, ", "),
			Notes:       account.Notes,
			Memberships: make([]bool, len(labels)),
		}
		_, row.Deleted = deleted[account.ID]
		_, row.Following = following[account.ID]
		for i := range labels {
			_, row.Memberships[i] = members[i][account.ID]
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Username < rows[j].Username })

	return Page{Labels: labels, Rows: rows}
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Fansly Backup</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.6em; text-align: left; }
th { background: #f0f0f0; }
tr.deleted td { color: #999; text-decoration: line-through; }
td.mark { text-align: center; }
details { margin: 0; }
</style>
</head>
<body>
<h1>Fansly Backup</h1>
<table>
<tr>
<th>Username</th>
<th>Display Name</th>
<th>Old Names</th>
<th>Following</th>
{{- range .Labels}}
<th>{{.}}</th>
{{- end}}
<th>Notes</th>
</tr>
{{- range .Rows}}
<tr{{if .Deleted}} class="deleted"{{end}}>
<td>{{if .Deleted}}{{.Username}}{{else}}<a href="https://fansly.com/{{.Username}}">{{.Username}}</a>{{end}}</td>
<td>{{.DisplayName}}</td>
<td>{{.OldNames}}</td>
<td class="mark">{{if .Following}}&#10003;{{end}}</td>
{{- range .Memberships}}
<td class="mark">{{if .}}&#10003;{{end}}</td>
{{- end}}
<td>
{{- range .Notes}}
<details><summary>{{.Title}}</summary><pre>{{.Data}}</pre></details>
{{- end}}
</td>
</tr>
{{- end}}
</table>
</body>
</html>
`))
