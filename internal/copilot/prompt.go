package copilot

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/cofoundry/server/pkg/models"
)

// founderPrompt frames the model as a startup copilot and carries whatever
// profile context is available. Missing fields are simply omitted.
const founderPrompt = `You are a pragmatic startup copilot advising an early-stage founder.
{{if .Name}}Founder: {{.Name}}.{{end}}
{{if .Stage}}Startup stage: {{.Stage}}.{{end}}
{{if .PrimarySkill}}Founder's primary skill: {{.PrimarySkill}}.{{end}}
{{if .Industries}}Industries of interest: {{.Industries}}.{{end}}
Answer concisely and concretely. Question:
{{.Question}}`

type promptData struct {
	Name         string
	Stage        string
	PrimarySkill string
	Industries   string
	Question     string
}

// BuildPrompt renders the chat prompt for a founder question, folding in
// profile context when a profile is provided.
func BuildPrompt(p *models.Profile, question string) (string, error) {
	data := promptData{Question: question}
	if p != nil {
		data.Name = p.Name
		data.Stage = p.Stage
		data.PrimarySkill = p.PrimarySkill
		data.Industries = strings.Join(p.IndustryInterests, ", ")
	}

	tpl, err := template.New("founder").Parse(founderPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
