package site

import (
	"fmt"
	"html/template"
	"time"
)

// PageData is the contract passed to page templates.
type PageData struct {
	Title       string
	Body        template.HTML
	Author      string
	Date        time.Time
	GeneratedAt time.Time
}

// defaultPageTemplate wraps a rendered body in a minimal standalone page.
const defaultPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`

// loadTemplate parses the template at path, or the built-in page shell when
// path is empty.
func loadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return template.Must(template.New("page").Parse(defaultPageTemplate)), nil
	}

	tpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("site: parse template %s: %w", path, err)
	}
	return tpl, nil
}
