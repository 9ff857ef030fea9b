package content

// CodeExample is a code sample attached to a lesson.
type CodeExample struct {
	Code    string `yaml:"code" json:"code"`
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// TestCase is one input/output pair used to check a practice answer.
type TestCase struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`
}

// PracticeChallenge is an exercise at the end of a Kotlin lesson.
type PracticeChallenge struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Hint        string     `yaml:"hint,omitempty" json:"hint,omitempty"`
	StarterCode string     `yaml:"starterCode" json:"starterCode"`
	TestCases   []TestCase `yaml:"testCases,omitempty" json:"testCases,omitempty"`
	Solution    string     `yaml:"solution,omitempty" json:"solution,omitempty"`
}

// KotlinLesson is one step of the Kotlin course.
type KotlinLesson struct {
	ID           string              `yaml:"id" json:"id"`
	Step         int                 `yaml:"step" json:"step"`
	Title        string              `yaml:"title" json:"title"`
	NextStep     string              `yaml:"nextStep,omitempty" json:"nextStep,omitempty"`
	PrevStep     string              `yaml:"prevStep,omitempty" json:"prevStep,omitempty"`
	Content      []string            `yaml:"content" json:"content"`
	CodeExamples []CodeExample       `yaml:"codeExamples,omitempty" json:"codeExamples,omitempty"`
	Practice     []PracticeChallenge `yaml:"practice,omitempty" json:"practice,omitempty"`
	DefaultCode  string              `yaml:"defaultCode" json:"defaultCode"`
}

// PracticePatch replaces the prose of one practice challenge.
type PracticePatch struct {
	Title       *string `yaml:"title,omitempty" json:"title,omitempty"`
	Description *string `yaml:"description,omitempty" json:"description,omitempty"`
	Hint        *string `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// IsEmpty reports whether the patch replaces nothing.
func (p PracticePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Hint == nil
}

// Apply returns c with the present fields replaced.
func (p PracticePatch) Apply(c PracticeChallenge) PracticeChallenge {
	c.Title = pick(p.Title, c.Title)
	c.Description = pick(p.Description, c.Description)
	c.Hint = pick(p.Hint, c.Hint)
	return c
}

// KotlinLessonPatch is the locale override of a Kotlin lesson. Content
// replaces the whole paragraph list; Practice merges index by index.
type KotlinLessonPatch struct {
	Title    *string         `yaml:"title,omitempty" json:"title,omitempty"`
	Content  []string        `yaml:"content,omitempty" json:"content,omitempty"`
	Practice []PracticePatch `yaml:"practice,omitempty" json:"practice,omitempty"`
}

// IsEmpty reports whether the patch replaces nothing.
func (p KotlinLessonPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Practice == nil
}

// SectionTag classifies a lesson section.
type SectionTag string

const (
	TagConcept  SectionTag = "concept"
	TagExercise SectionTag = "exercise"
	TagTip      SectionTag = "tip"
	TagKeyPoint SectionTag = "key-point"
)

// LessonSection is a tagged block of a web course lesson.
type LessonSection struct {
	Tag    SectionTag `yaml:"tag" json:"tag"`
	Title  string     `yaml:"title,omitempty" json:"title,omitempty"`
	Body   string     `yaml:"body" json:"body"`
	Code   string     `yaml:"code,omitempty" json:"code,omitempty"`
	Badges []string   `yaml:"badges,omitempty" json:"badges,omitempty"`
}

// WebLesson is one module of the React course.
type WebLesson struct {
	ID           string          `yaml:"id" json:"id"`
	Step         int             `yaml:"step" json:"step"`
	Title        string          `yaml:"title" json:"title"`
	NextStep     string          `yaml:"nextStep,omitempty" json:"nextStep,omitempty"`
	PrevStep     string          `yaml:"prevStep,omitempty" json:"prevStep,omitempty"`
	Content      []string        `yaml:"content" json:"content"`
	Sections     []LessonSection `yaml:"sections,omitempty" json:"sections,omitempty"`
	CodeExamples []CodeExample   `yaml:"codeExamples,omitempty" json:"codeExamples,omitempty"`
	DefaultCode  string          `yaml:"defaultCode" json:"defaultCode"`
}

// SectionPatch replaces the prose of one lesson section.
type SectionPatch struct {
	Title *string `yaml:"title,omitempty" json:"title,omitempty"`
	Body  *string `yaml:"body,omitempty" json:"body,omitempty"`
}

// IsEmpty reports whether the patch replaces nothing.
func (p SectionPatch) IsEmpty() bool {
	return p.Title == nil && p.Body == nil
}

// Apply returns s with the present fields replaced.
func (p SectionPatch) Apply(s LessonSection) LessonSection {
	s.Title = pick(p.Title, s.Title)
	s.Body = pick(p.Body, s.Body)
	return s
}

// WebLessonPatch is the locale override of a web course lesson.
type WebLessonPatch struct {
	Title    *string        `yaml:"title,omitempty" json:"title,omitempty"`
	Content  []string       `yaml:"content,omitempty" json:"content,omitempty"`
	Sections []SectionPatch `yaml:"sections,omitempty" json:"sections,omitempty"`
}

// IsEmpty reports whether the patch replaces nothing.
func (p WebLessonPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Sections == nil
}

// LessonOutline is the navigation summary of a lesson.
type LessonOutline struct {
	ID       string `json:"id" yaml:"id"`
	Step     int    `json:"step" yaml:"step"`
	Title    string `json:"title" yaml:"title"`
	NextStep string `json:"nextStep,omitempty" yaml:"nextStep,omitempty"`
	PrevStep string `json:"prevStep,omitempty" yaml:"prevStep,omitempty"`
}
