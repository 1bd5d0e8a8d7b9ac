package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage    ChromeClass = "regform-page"
	ClassAlert   ChromeClass = "form-alert"
	ClassErrors  ChromeClass = "regform-errors"
	ClassSummary ChromeClass = "summary"
	ClassList    ChromeClass = "summary-list"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"page":    string(ClassPage),
		"alert":   string(ClassAlert),
		"errors":  string(ClassErrors),
		"summary": string(ClassSummary),
		"list":    string(ClassList),
	}
}
