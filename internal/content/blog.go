package content

// BlogPostContent is the header copy of a blog article in one locale.
type BlogPostContent struct {
	Title                 string `yaml:"title" json:"title"`
	Subtitle              string `yaml:"subtitle" json:"subtitle"`
	BreadcrumbLabel       string `yaml:"breadcrumbLabel" json:"breadcrumbLabel"`
	IntroParagraph        string `yaml:"introParagraph,omitempty" json:"introParagraph,omitempty"`
	CategoriesDescription string `yaml:"categoriesDescription,omitempty" json:"categoriesDescription,omitempty"`
}

// PostSummary is a blog post as listed inside a category.
type PostSummary struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Slug        string   `yaml:"slug" json:"slug"`
	Topics      []string `yaml:"topics,omitempty" json:"topics,omitempty"`
}

// Category groups blog posts under a slug.
type Category struct {
	Slug        string        `yaml:"slug" json:"slug"`
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description" json:"description"`
	Posts       []PostSummary `yaml:"posts,omitempty" json:"posts,omitempty"`
}

// CategoryPatch is the locale override of a category header.
type CategoryPatch struct {
	Title       *string `yaml:"title,omitempty" json:"title,omitempty"`
	Description *string `yaml:"description,omitempty" json:"description,omitempty"`
}

// IsEmpty reports whether the patch replaces nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}

// Apply returns c with the present fields replaced. Posts are untouched.
func (p CategoryPatch) Apply(c Category) Category {
	c.Title = pick(p.Title, c.Title)
	c.Description = pick(p.Description, c.Description)
	return c
}
