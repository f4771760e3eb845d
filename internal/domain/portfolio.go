package domain

// PortfolioData is the site content, loaded once at startup and never mutated.
type PortfolioData struct {
	Profile         Profile           `yaml:"profile"`
	Pages           map[string]string `yaml:"pages"`
	NavLinks        []NavLink         `yaml:"navLinks"`
	LogoSuffixes    []string          `yaml:"logoSuffixes"`
	TypingSentences []string          `yaml:"typingSentences"`
	Skills          []Skill           `yaml:"skills"`
	Qualifications  []Qualification   `yaml:"qualifications"`
	Projects        []Project         `yaml:"projects"`
	Resume          Resume            `yaml:"resume"`
}

type Profile struct {
	Name       string `yaml:"name"`
	Title      string `yaml:"title"`
	Email      string `yaml:"email"`
	LinkedIn   string `yaml:"linkedin"`
	GitHub     string `yaml:"github"`
	Kaggle     string `yaml:"kaggle"`
	YouTube    string `yaml:"youtube"`
	ResumePath string `yaml:"resumePath"`
}

type NavLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type Qualification struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Year        string `yaml:"year"`
	Details     string `yaml:"details"`
}

type Project struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Tech        string `yaml:"tech"`
	Description string `yaml:"description"`
	AccentColor string `yaml:"accentColor"`
	Icon        string `yaml:"icon"`
	ExternalURL string `yaml:"externalUrl"`
}

type Resume struct {
	Name       string          `yaml:"name"`
	Title      string          `yaml:"title"`
	Bio        string          `yaml:"bio"`
	Contact    ResumeContact   `yaml:"contact"`
	TechStack  []string        `yaml:"techStack"`
	Awards     []Award         `yaml:"awards"`
	Experience []Experience    `yaml:"experience"`
	Education  []Qualification `yaml:"education"`
}

type ResumeContact struct {
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	LinkedIn string `yaml:"linkedin"`
	GitHub   string `yaml:"github"`
}

type Award struct {
	Title  string `yaml:"title"`
	Issuer string `yaml:"issuer"`
	Year   string `yaml:"year"`
}

type Experience struct {
	Title   string   `yaml:"title"`
	Company string   `yaml:"company"`
	Years   string   `yaml:"years"`
	Details []string `yaml:"details"`
}

// PortfolioRepository is the read-only content store.
type PortfolioRepository interface {
	Get() *PortfolioData
	FindProject(id string) (*Project, bool)
}

// PageView is the data every page template receives.
type PageView struct {
	Data        *PortfolioData
	ActivePage  string
	CurrentYear int
	Project     *Project
}

// PortfolioUsecase builds page views from the content store.
type PortfolioUsecase interface {
	Page(activePage string) PageView
	ProjectPage(id string) (PageView, error)
}
