package v1

import (
	"errors"
	"net/http"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/web"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	portfolioUC domain.PortfolioUsecase
}

// NewPageHandler registers the server-rendered pages
func NewPageHandler(r gin.IRoutes, portfolioUC domain.PortfolioUsecase) {
	handler := &PageHandler{
		portfolioUC: portfolioUC,
	}

	r.GET("/", handler.render(web.PageHome, "/"))
	r.GET("/projects", handler.render(web.PageProjects, "/projects"))
	r.GET("/projects/:id", handler.ProjectDetail)
	r.GET("/resume", handler.render(web.PageResume, "/resume"))
	r.GET("/contact", handler.render(web.PageContact, "/contact"))
}

func (h *PageHandler) render(page, activePage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, page, h.portfolioUC.Page(activePage))
	}
}

// ProjectDetail renders one project, or 404 when the id is unknown
func (h *PageHandler) ProjectDetail(c *gin.Context) {
	view, err := h.portfolioUC.ProjectPage(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.Error(apperror.NotFound("Project not found"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	c.HTML(http.StatusOK, web.PageProject, view)
}
