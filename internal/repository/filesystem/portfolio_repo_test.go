package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	minimalSite = `
profile:
  name: Ada Lovelace
  title: Analyst
navLinks:
  - name: Home
    url: /
skills:
  - name: Mathematics
    level: 99
`
	minimalProjects = `
projects:
  - id: p1
    title: Analytical Engine Notes
    tech: Punch cards
`
	minimalResume = `
resume:
  name: Ada Lovelace
  bio: First programmer.
`
)

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadMergesContentFiles(t *testing.T) {
	dir := writeContent(t, map[string]string{
		SiteFile:     minimalSite,
		ProjectsFile: minimalProjects,
		ResumeFile:   minimalResume,
	})

	data, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", data.Profile.Name)
	require.Len(t, data.Projects, 1)
	assert.Equal(t, "p1", data.Projects[0].ID)
	assert.Equal(t, "First programmer.", data.Resume.Bio)
	assert.Equal(t, 99, data.Skills[0].Level)
}

func TestLoadShippedContent(t *testing.T) {
	data, err := Load(filepath.Join("..", "..", "..", "content"))
	require.NoError(t, err)
	assert.NotEmpty(t, data.Projects)
	assert.NotEmpty(t, data.Resume.Experience)

	// Linked static assets must ship with the site.
	require.True(t, strings.HasPrefix(data.Profile.ResumePath, "/static/"))
	_, err = os.Stat(filepath.Join("..", "..", "..", "static", strings.TrimPrefix(data.Profile.ResumePath, "/static/")))
	assert.NoError(t, err)
}

func TestLoadFailsFast(t *testing.T) {
	cases := map[string]map[string]string{
		"missing resume file": {
			SiteFile:     minimalSite,
			ProjectsFile: minimalProjects,
		},
		"malformed yaml": {
			SiteFile:     "profile: [unterminated",
			ProjectsFile: minimalProjects,
			ResumeFile:   minimalResume,
		},
		"unknown key": {
			SiteFile:     minimalSite + "\nfooter: true\n",
			ProjectsFile: minimalProjects,
			ResumeFile:   minimalResume,
		},
		"duplicate project id": {
			SiteFile:     minimalSite,
			ProjectsFile: minimalProjects + "  - id: p1\n    title: Again\n",
			ResumeFile:   minimalResume,
		},
		"blank project id": {
			SiteFile:     minimalSite,
			ProjectsFile: "projects:\n  - id: \"\"\n    title: Nameless\n",
			ResumeFile:   minimalResume,
		},
		"skill level out of range": {
			SiteFile:     minimalSite + "  - name: Poetry\n    level: 140\n",
			ProjectsFile: minimalProjects,
			ResumeFile:   minimalResume,
		},
	}

	for name, files := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := Load(writeContent(t, files))
			assert.Error(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestPortfolioRepositoryFindProject(t *testing.T) {
	dir := writeContent(t, map[string]string{
		SiteFile:     minimalSite,
		ProjectsFile: minimalProjects,
		ResumeFile:   minimalResume,
	})
	data, err := Load(dir)
	require.NoError(t, err)

	repo := NewPortfolioRepository(data)
	assert.Same(t, data, repo.Get())

	project, ok := repo.FindProject("p1")
	require.True(t, ok)
	assert.Equal(t, "Analytical Engine Notes", project.Title)

	project, ok = repo.FindProject("p2")
	assert.False(t, ok)
	assert.Nil(t, project)
}
