package llm

import (
	"path/filepath"
	"strings"
)

var languageByExtension = map[string]string{
	".go":    "Go",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".py":    "Python",
	".java":  "Java",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".hpp":   "C++",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".cs":    "C#",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".sh":    "Shell",
	".yml":   "YAML",
	".yaml":  "YAML",
	".sql":   "SQL",
}

// LanguageFor guesses the language of a file from its extension. Unknown
// extensions yield an empty string.
func LanguageFor(fileName string) string {
	return languageByExtension[strings.ToLower(filepath.Ext(fileName))]
}
