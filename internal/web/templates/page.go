// Package templates holds the HTML components of the questionnaire UI.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PageParams drives the single page: upload form, optional inline error,
// and the generated questionnaire once a file was converted.
type PageParams struct {
	Error       string
	ErrorAction string
	ErrorCode   string

	Questionnaire     string // Indented document shown in <pre>
	QuestionnaireJSON string // Compact document carried to the submit step
	Encoding          string
	ItemCount         int
	SkippedCount      int

	SubmitEnabled bool
}

const pageStyle = `
body { display: flex; flex-direction: row; align-items: flex-start; justify-content: flex-start; font-family: sans-serif; }
#form-container { width: 40%; margin-right: 20px; }
#questionnaire { width: 60%; border: 1px solid #ccc; padding: 10px; }
.error { color: red; margin-top: 10px; }
.stats { color: #555; font-size: 0.9em; }
pre { white-space: pre-wrap; }
`

// Page renders the full document.
func Page(p PageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString("<!DOCTYPE html>\n<html lang=\"zh-Hant\">\n<head>\n<meta charset=\"utf-8\">\n")
		b.WriteString("<title>問卷生成與上傳</title>\n<style>")
		b.WriteString(pageStyle)
		b.WriteString("</style>\n</head>\n<body>\n")

		b.WriteString("<div id=\"form-container\">\n<h2>問卷生成與上傳</h2>\n")
		b.WriteString("<form action=\"/upload\" method=\"post\" enctype=\"multipart/form-data\">\n")
		b.WriteString("<label for=\"file\">上傳 CSV 檔案：</label>\n")
		b.WriteString("<input type=\"file\" id=\"file\" name=\"file\" accept=\".csv\" />\n")
		b.WriteString("<button type=\"submit\">上傳並生成問卷</button>\n</form>\n")

		if p.Error != "" {
			writeError(&b, p)
		}

		if p.SubmitEnabled && p.QuestionnaireJSON != "" {
			b.WriteString("<form action=\"/upload_to_server\" method=\"post\">\n")
			fmt.Fprintf(&b, "<input type=\"hidden\" name=\"questionnaire\" value=\"%s\" />\n",
				templ.EscapeString(p.QuestionnaireJSON))
			b.WriteString("<button type=\"submit\">上傳問卷到伺服器</button>\n</form>\n")
		}
		b.WriteString("</div>\n")

		b.WriteString("<div id=\"questionnaire\">\n")
		if p.Questionnaire != "" {
			b.WriteString("<h3>問卷內容：</h3>\n")
			fmt.Fprintf(&b, "<p class=\"stats\">%d items, %d rows skipped, encoding %s</p>\n",
				p.ItemCount, p.SkippedCount, templ.EscapeString(p.Encoding))
			fmt.Fprintf(&b, "<pre>%s</pre>\n", templ.EscapeString(p.Questionnaire))
		}
		b.WriteString("</div>\n</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeError(b *strings.Builder, p PageParams) {
	b.WriteString("<div class=\"error\" role=\"alert\">")
	b.WriteString(templ.EscapeString(p.Error))
	if p.ErrorAction != "" {
		fmt.Fprintf(b, " %s", templ.EscapeString(p.ErrorAction))
	}
	if p.ErrorCode != "" {
		fmt.Fprintf(b, " <small>(%s)</small>", templ.EscapeString(p.ErrorCode))
	}
	b.WriteString("</div>\n")
}

// SubmissionResult renders the HTML fragment returned after a successful
// submission.
func SubmissionResult(body, location string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString("<h3>Successfully uploaded to server!</h3>\n")
		if location != "" {
			fmt.Fprintf(&b, "<p>Location: <code>%s</code></p>\n", templ.EscapeString(location))
		}
		b.WriteString("<h4>Server Response:</h4>\n")
		fmt.Fprintf(&b, "<pre style=\"background-color: #f4f4f4; padding: 10px; border: 1px solid #ccc;\">%s</pre>\n",
			templ.EscapeString(body))

		_, err := io.WriteString(w, b.String())
		return err
	})
}
