// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// StuckFolderMailParams feeds templates/stuckFolder.txt.
type StuckFolderMailParams struct {
	ID           string
	Project      string
	Host         string
	Path         string
	ResolvedPath string
	EntryCount   int
	Entries      []string
	CheckedAt    time.Time
}

var (
	stuckFolderTemplate = template.New("stuckFolder").Funcs(sprig.TxtFuncMap())

	//go:embed templates/stuckFolder.txt
	stuckFolderTemplateRaw string
)

func init() {
	if _, err := stuckFolderTemplate.Parse(stuckFolderTemplateRaw); err != nil {
		panic(err)
	}
}

func render(t *template.Template, p any) (string, error) {
	b := bytes.Buffer{}
	err := t.Execute(&b, p)
	return b.String(), err
}

// RenderStuckFolder renders the notification body.
func RenderStuckFolder(p StuckFolderMailParams) (string, error) {
	return render(stuckFolderTemplate, p)
}

// StuckFolderSubject is the notification subject for project.
func StuckFolderSubject(project string) string {
	return fmt.Sprintf("Project: %s - Directory was not empty.", project)
}
