package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/repository/filesystem"
	"go-portfolio-site/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portfolioFixture() *domain.PortfolioData {
	return &domain.PortfolioData{
		Profile:  domain.Profile{Name: "Ada Lovelace"},
		NavLinks: []domain.NavLink{{Name: "Home", URL: "/"}},
		Projects: []domain.Project{{ID: "p1", Title: "Analytical Engine Notes"}},
	}
}

func TestPortfolioPage(t *testing.T) {
	data := portfolioFixture()
	uc := usecase.NewPortfolioUsecase(filesystem.NewPortfolioRepository(data))

	view := uc.Page("/resume")
	assert.Same(t, data, view.Data)
	assert.Equal(t, "/resume", view.ActivePage)
	assert.Equal(t, time.Now().Year(), view.CurrentYear)
	assert.Nil(t, view.Project)
}

func TestPortfolioProjectPage(t *testing.T) {
	uc := usecase.NewPortfolioUsecase(filesystem.NewPortfolioRepository(portfolioFixture()))

	t.Run("Should return the matching project", func(t *testing.T) {
		view, err := uc.ProjectPage("p1")
		require.NoError(t, err)
		require.NotNil(t, view.Project)
		assert.Equal(t, "Analytical Engine Notes", view.Project.Title)
		assert.Equal(t, "/projects", view.ActivePage)
	})

	t.Run("Should report not found for unknown ids", func(t *testing.T) {
		_, err := uc.ProjectPage("p2")
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func TestHealthCheck(t *testing.T) {
	status := usecase.NewHealthUsecase("sqlite", false).Check(context.Background())
	assert.Equal(t, map[string]string{"status": "ok", "store": "sqlite", "contact": "unavailable"}, status)
}
