package poll

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

var tmpl = template.Must(template.ParseFS(templates, "templates/*.tmpl"))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// RenderFinal renders the text posted to the destination channel.
func RenderFinal(p *UpcomingPoll) (string, error) {
	return render("final.tmpl", p)
}

// RenderPreview renders the private preview of a poll in progress:
// the final text quoted, followed by what to do next.
func RenderPreview(p *UpcomingPoll) (string, error) {
	final, err := RenderFinal(p)
	if err != nil {
		return "", err
	}
	return render("preview.tmpl", struct{ Quoted []string }{strings.Split(final, "\n")})
}

// RenderStarted renders the channel announcement for a new poll.
func RenderStarted(u User) (string, error) {
	return render("started.tmpl", u)
}

// RenderInstructions renders the first direct message of a new poll.
func RenderInstructions(replaced bool) (string, error) {
	return render("instructions.tmpl", struct{ Replaced bool }{replaced})
}

// RenderExpired renders the notice sent when an abandoned poll is dropped.
func RenderExpired(p *UpcomingPoll) (string, error) {
	return render("expired.tmpl", p)
}
