package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/gnoverse/rangelogic/describe"
)

var (
	scriptStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle      = color.New(color.FgCyan, color.Bold)
	lineStyle      = color.New(color.FgHiBlue, color.Bold)
	conditionStyle = color.New(color.FgGreen, color.Bold)
	neverStyle     = color.New(color.FgRed, color.Bold)
	labelStyle     = color.New(color.FgWhite, color.Bold)
)

const descriptionTemplate = `{{header .Script .File}}
{{condition .Condition}}
{{- range .Values}}
{{value .Label .Text}}
{{- end}}
`

type valueData struct {
	Label string
	Text  string
}

type descriptionData struct {
	Script    string
	File      string
	Condition string
	Values    []valueData
}

var reportTemplate = template.Must(template.New("description").Funcs(template.FuncMap{
	"header":    header,
	"condition": condition,
	"value":     value,
}).Parse(descriptionTemplate))

// FormatDescriptions renders descriptions as a human-readable report, one
// block per script.
func FormatDescriptions(descs []describe.Description) string {
	var builder strings.Builder
	for _, d := range descs {
		builder.WriteString(buildDescription(d))
		builder.WriteString("\n")
	}
	return builder.String()
}

func buildDescription(d describe.Description) string {
	data := descriptionData{
		Script:    d.Script,
		File:      d.File,
		Condition: DescribeCondition(d.Condition),
	}
	for _, label := range d.Labels() {
		data.Values = append(data.Values, valueData{Label: label, Text: DescribeRange(d.Values[label])})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting description: %v", err)
	}
	return buf.String()
}

func header(script, file string) string {
	out := scriptStyle.Sprintf("script: %s", script)
	if file != "" {
		out += "\n" + lineStyle.Sprint(" --> ") + fileStyle.Sprint(file)
	}
	return out
}

func condition(text string) string {
	style := conditionStyle
	if strings.Contains(text, "is never satisfied") {
		style = neverStyle
	}
	return lineStyle.Sprint("  = ") + "when " + style.Sprint(text)
}

func value(label, text string) string {
	return lineStyle.Sprint("  = ") + labelStyle.Sprint(label) + " " + text
}
