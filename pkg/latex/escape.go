package latex

import "strings"

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
)

// Escape returns s with LaTeX special characters replaced so that it
// typesets literally. Nothing in this package escapes implicitly.
func Escape(s string) string {
	return escaper.Replace(s)
}
