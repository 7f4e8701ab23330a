package progress

import "strings"

// The 8 SAT content domains plus the catch-all bucket.
const (
	CategoryAlgebra          = "Algebra"
	CategoryAdvancedMath     = "Advanced Math"
	CategoryProblemSolving   = "Problem-Solving and Data Analysis"
	CategoryGeometry         = "Geometry and Trigonometry"
	CategoryCraftStructure   = "Craft and Structure"
	CategoryInformationIdeas = "Information and Ideas"
	CategoryConventions      = "Standard English Conventions"
	CategoryExpressionIdeas  = "Expression of Ideas"
	CategoryOther            = "Other"
)

const (
	SectionMath           = "Math"
	SectionReadingWriting = "Reading and Writing"
)

// MathCategories and ReadingWritingCategories define the fixed section
// membership used for section score means.
var MathCategories = []string{
	CategoryAlgebra,
	CategoryAdvancedMath,
	CategoryProblemSolving,
	CategoryGeometry,
}

var ReadingWritingCategories = []string{
	CategoryCraftStructure,
	CategoryInformationIdeas,
	CategoryConventions,
	CategoryExpressionIdeas,
}

// AllCategories in report order: Math domains first, then Reading and Writing.
var AllCategories = []string{
	CategoryAlgebra,
	CategoryAdvancedMath,
	CategoryProblemSolving,
	CategoryGeometry,
	CategoryCraftStructure,
	CategoryInformationIdeas,
	CategoryConventions,
	CategoryExpressionIdeas,
}

// tagTable maps lowercase substrings to canonical categories. Order
// matters: more specific phrases come before looser single-word matches
// so "expression of ideas" never falls into the bare "ideas" trap and
// "nonlinear" resolves before "linear".
var tagTable = []struct {
	match    string
	category string
}{
	{"problem-solving and data analysis", CategoryProblemSolving},
	{"problem solving and data analysis", CategoryProblemSolving},
	{"standard english conventions", CategoryConventions},
	{"geometry and trigonometry", CategoryGeometry},
	{"information and ideas", CategoryInformationIdeas},
	{"expression of ideas", CategoryExpressionIdeas},
	{"craft and structure", CategoryCraftStructure},
	{"advanced math", CategoryAdvancedMath},
	{"data analysis", CategoryProblemSolving},
	{"words in context", CategoryCraftStructure},
	{"nonlinear", CategoryAdvancedMath},
	{"quadratic", CategoryAdvancedMath},
	{"exponential", CategoryAdvancedMath},
	{"polynomial", CategoryAdvancedMath},
	{"algebra", CategoryAlgebra},
	{"linear equation", CategoryAlgebra},
	{"linear function", CategoryAlgebra},
	{"inequalit", CategoryAlgebra},
	{"statistic", CategoryProblemSolving},
	{"probability", CategoryProblemSolving},
	{"ratio", CategoryProblemSolving},
	{"percent", CategoryProblemSolving},
	{"geometry", CategoryGeometry},
	{"trigonometr", CategoryGeometry},
	{"triangle", CategoryGeometry},
	{"circle", CategoryGeometry},
	{"vocabulary", CategoryCraftStructure},
	{"structure", CategoryCraftStructure},
	{"craft", CategoryCraftStructure},
	{"inference", CategoryInformationIdeas},
	{"evidence", CategoryInformationIdeas},
	{"main idea", CategoryInformationIdeas},
	{"convention", CategoryConventions},
	{"grammar", CategoryConventions},
	{"punctuation", CategoryConventions},
	{"transition", CategoryExpressionIdeas},
	{"rhetorical", CategoryExpressionIdeas},
	{"synthesis", CategoryExpressionIdeas},
}

func lookupCategory(text string) (string, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return "", false
	}
	for _, entry := range tagTable {
		if strings.Contains(lower, entry.match) {
			return entry.category, true
		}
	}
	return "", false
}

// ResolveCategory maps a question onto one canonical skill category.
// Candidates are checked in precedence order: the authored skill category,
// then each tag, then substring inference over the question text. The
// result is total (anything unrecognized lands in "Other") and
// deterministic for a given question.
func ResolveCategory(skillCategory string, tags []string, questionText string) string {
	if cat, ok := lookupCategory(skillCategory); ok {
		return cat
	}
	for _, tag := range tags {
		if cat, ok := lookupCategory(tag); ok {
			return cat
		}
	}
	if cat, ok := lookupCategory(questionText); ok {
		return cat
	}
	return CategoryOther
}
