package view

import (
	"html/template"
	"io"

	"reviewdesk/internal/model"
	"reviewdesk/internal/service"
)

// Page is everything one render of the console needs.
type Page struct {
	Notice   service.Notice
	OpenURL  string
	Rows     []Row
	Activity []model.Activity
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Document Review</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    .notice { padding: .5rem 1rem; margin-bottom: 1rem; }
    .notice.success { background: #e6f4ea; }
    .notice.error { background: #fce8e6; }
    table { border-collapse: collapse; width: 100%; }
    td { border-bottom: 1px solid #ddd; padding: .5rem; vertical-align: top; }
    .view-link { margin-right: .5rem; }
    form.inline { display: inline; }
  </style>
</head>
<body>
  <h1>Document Review</h1>
{{- with .Notice.Text}}
  <div class="notice {{$.Notice.Level}}" role="alert">{{.}}</div>
{{- end}}
{{- with .OpenURL}}
  <p><a href="{{.}}" target="_blank" class="open-link">Open PDF</a></p>
  <script>window.open({{.}}, "_blank");</script>
{{- end}}

  <section>
    <h2>Send for review</h2>
    <form action="/actions/send-review" method="post" enctype="multipart/form-data">
      <input type="file" id="fileInput" name="files" multiple />
      <input type="email" id="emailInput" name="email" placeholder="Reviewer email" />
      <button type="submit">Send</button>
    </form>
  </section>

  <section>
    <h2>Upload draft</h2>
    <form action="/actions/upload-draft" method="post" enctype="multipart/form-data">
      <input type="file" id="draftFile" name="file" />
      <button type="submit">Upload</button>
    </form>
  </section>

  <section>
    <h2>Documents</h2>
    <table>
      <tbody id="fileList">
{{- range .Rows}}
        <tr>
          <td>
            <strong>{{.Filename}}</strong><br>
            <a href="{{.OriginalURL}}" class="view-link" target="_blank">Original</a>
{{- with .DraftURL}}
            <a href="{{.}}" class="view-link" target="_blank">Draft</a>
{{- end}}
          </td>
          <td>
{{- if .CanApprove}}
            <form class="inline" action="/actions/approve" method="post"><input type="hidden" name="filename" value="{{.Filename}}" /><button class="file-action-btn" data-action="approve">Approve</button></form>
{{- end}}
{{- if .CanConvert}}
            <form class="inline" action="/actions/convert" method="post"><input type="hidden" name="filename" value="{{.Filename}}" /><button class="file-action-btn" data-action="convert">Convert to PDF</button></form>
{{- end}}
{{- if .CanSendFinal}}
            <form class="inline" action="/actions/send-final" method="post"><input type="hidden" name="filename" value="{{.Filename}}" /><button class="file-action-btn" data-action="send-final">Send Final Policy</button></form>
{{- end}}
          </td>
        </tr>
{{- end}}
      </tbody>
    </table>
  </section>
{{- with .Activity}}

  <section>
    <h2>Recent activity</h2>
    <ul id="activity">
{{- range .}}
      <li>{{.CreatedAt.Format "2006-01-02 15:04:05"}} {{.Action}} {{.Filename}}: {{.Outcome}}</li>
{{- end}}
    </ul>
  </section>
{{- end}}
</body>
</html>
`))

// Render writes the full console page.
func Render(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}
