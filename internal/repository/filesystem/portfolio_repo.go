package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-portfolio-site/internal/domain"

	"gopkg.in/yaml.v3"
)

// Content files read by Load, in merge order.
const (
	SiteFile     = "site.yaml"
	ProjectsFile = "projects.yaml"
	ResumeFile   = "resume.yaml"
)

type siteDocument struct {
	Profile         domain.Profile         `yaml:"profile"`
	Pages           map[string]string      `yaml:"pages"`
	NavLinks        []domain.NavLink       `yaml:"navLinks"`
	LogoSuffixes    []string               `yaml:"logoSuffixes"`
	TypingSentences []string               `yaml:"typingSentences"`
	Skills          []domain.Skill         `yaml:"skills"`
	Qualifications  []domain.Qualification `yaml:"qualifications"`
}

type projectsDocument struct {
	Projects []domain.Project `yaml:"projects"`
}

type resumeDocument struct {
	Resume domain.Resume `yaml:"resume"`
}

// Load reads and merges the content files in dir. Any missing or malformed
// file is an error; there is no partial load.
func Load(dir string) (*domain.PortfolioData, error) {
	var site siteDocument
	if err := decodeFile(filepath.Join(dir, SiteFile), &site); err != nil {
		return nil, err
	}
	var projects projectsDocument
	if err := decodeFile(filepath.Join(dir, ProjectsFile), &projects); err != nil {
		return nil, err
	}
	var resume resumeDocument
	if err := decodeFile(filepath.Join(dir, ResumeFile), &resume); err != nil {
		return nil, err
	}

	data := &domain.PortfolioData{
		Profile:         site.Profile,
		Pages:           site.Pages,
		NavLinks:        site.NavLinks,
		LogoSuffixes:    site.LogoSuffixes,
		TypingSentences: site.TypingSentences,
		Skills:          site.Skills,
		Qualifications:  site.Qualifications,
		Projects:        projects.Projects,
		Resume:          resume.Resume,
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("invalid content in %s: %w", dir, err)
	}
	return data, nil
}

func decodeFile(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read content file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func validate(data *domain.PortfolioData) error {
	var errs []error
	if strings.TrimSpace(data.Profile.Name) == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}
	if len(data.NavLinks) == 0 {
		errs = append(errs, errors.New("navLinks must not be empty"))
	}
	if len(data.Projects) == 0 {
		errs = append(errs, errors.New("projects must not be empty"))
	}

	seen := make(map[string]bool, len(data.Projects))
	for i, p := range data.Projects {
		id := strings.TrimSpace(p.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("projects[%d].id is required", i))
		case id != p.ID || strings.Contains(id, "/"):
			errs = append(errs, fmt.Errorf("projects[%d].id %q is not a valid path segment", i, p.ID))
		case seen[id]:
			errs = append(errs, fmt.Errorf("projects[%d].id %q is duplicated", i, p.ID))
		}
		seen[id] = true
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("projects[%d].title is required", i))
		}
	}

	for i, s := range data.Skills {
		if s.Level < 0 || s.Level > 100 {
			errs = append(errs, fmt.Errorf("skills[%d].level %d is outside 0..100", i, s.Level))
		}
	}
	return errors.Join(errs...)
}

type portfolioRepo struct {
	data  *domain.PortfolioData
	index map[string]int
}

// NewPortfolioRepository wraps loaded content. The data must not be modified afterwards.
func NewPortfolioRepository(data *domain.PortfolioData) domain.PortfolioRepository {
	index := make(map[string]int, len(data.Projects))
	for i, p := range data.Projects {
		index[p.ID] = i
	}
	return &portfolioRepo{data: data, index: index}
}

func (r *portfolioRepo) Get() *domain.PortfolioData {
	return r.data
}

func (r *portfolioRepo) FindProject(id string) (*domain.Project, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return &r.data.Projects[i], true
}
