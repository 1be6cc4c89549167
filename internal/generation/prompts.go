package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Prompt names used for logging and metrics.
const (
	PromptName          = "name"
	PromptDocumentation = "documentation"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(promptFS, "prompts/*.tmpl"),
)

// SchemaData is the input shared by both prompts.
type SchemaData struct {
	ConnectionName string
	TableNames     []string
	// Schema is the text produced by introspect.DescribeSchema.
	Schema string
}

// NamePrompt builds the prompt asking for a friendly database name.
func NamePrompt(data SchemaData) (Prompt, error) {
	return render(PromptName, "name_system.tmpl", "name_user.tmpl", data)
}

// DocumentationPrompt builds the prompt asking for table documentation.
func DocumentationPrompt(data SchemaData) (Prompt, error) {
	return render(PromptDocumentation, "documentation_system.tmpl", "documentation_user.tmpl", data)
}

func render(name, systemTmpl, userTmpl string, data SchemaData) (Prompt, error) {
	system, err := execute(systemTmpl, data)
	if err != nil {
		return Prompt{}, err
	}
	user, err := execute(userTmpl, data)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{Name: name, System: system, User: user}, nil
}

func execute(name string, data SchemaData) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
