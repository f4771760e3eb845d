package usecase

import (
	"time"

	"go-portfolio-site/internal/domain"
)

type portfolioUsecase struct {
	repo domain.PortfolioRepository
	now  func() time.Time
}

func NewPortfolioUsecase(repo domain.PortfolioRepository) domain.PortfolioUsecase {
	return &portfolioUsecase{repo: repo, now: time.Now}
}

func (uc *portfolioUsecase) Page(activePage string) domain.PageView {
	return domain.PageView{
		Data:        uc.repo.Get(),
		ActivePage:  activePage,
		CurrentYear: uc.now().Year(),
	}
}

func (uc *portfolioUsecase) ProjectPage(id string) (domain.PageView, error) {
	project, ok := uc.repo.FindProject(id)
	if !ok {
		return domain.PageView{}, domain.ErrProjectNotFound
	}
	view := uc.Page("/projects")
	view.Project = project
	return view, nil
}
