package splitter

// Separator lists for code-aware splitting, largest syntactic unit first.
var codeSeparators = map[string][]string{
	"go": {
		"\nfunc ", "\ntype ", "\nvar ", "\nconst ",
		"\n\tif ", "\n\tfor ", "\n\tswitch ",
		"\n\n", "\n", " ", "",
	},
	"python": {
		"\nclass ", "\ndef ", "\n\tdef ",
		"\n\n", "\n", " ", "",
	},
	"javascript": {
		"\nfunction ", "\nconst ", "\nlet ", "\nvar ", "\nclass ",
		"\nif ", "\nfor ", "\nwhile ", "\nswitch ",
		"\n\n", "\n", " ", "",
	},
	"typescript": {
		"\nenum ", "\ninterface ", "\nnamespace ", "\ntype ", "\nclass ",
		"\nfunction ", "\nconst ", "\nlet ", "\nvar ",
		"\n\n", "\n", " ", "",
	},
	"java": {
		"\nclass ", "\npublic ", "\nprotected ", "\nprivate ", "\nstatic ",
		"\nif ", "\nfor ", "\nwhile ", "\nswitch ",
		"\n\n", "\n", " ", "",
	},
	"csharp": {
		"\nnamespace ", "\nclass ", "\npublic ", "\nprotected ", "\nprivate ",
		"\nstatic ", "\nif ", "\nfor ", "\nwhile ", "\nswitch ",
		"\n\n", "\n", " ", "",
	},
}

// CodeLanguages returns the languages the code strategy supports.
func CodeLanguages() []string {
	return []string{"csharp", "go", "java", "javascript", "python", "typescript"}
}
