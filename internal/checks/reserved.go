package checks

// Identifiers generated code uses for its own locals.
var generatorLocals = []string{
	"value", "int", "char", "i", "n", "argv", "args",
}

var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while",
}

var ocamlKeywords = []string{
	"and", "as", "assert", "asr", "begin", "class", "constraint", "do",
	"done", "downto", "else", "end", "exception", "external", "false",
	"for", "fun", "function", "functor", "if", "in", "include", "inherit",
	"initializer", "land", "lazy", "let", "lor", "lsl", "lsr", "lxor",
	"match", "method", "mod", "module", "mutable", "new", "nonrec",
	"object", "of", "open", "or", "private", "rec", "sig", "struct",
	"then", "to", "true", "try", "type", "val", "virtual", "when", "while",
	"with",
}

var haskellKeywords = []string{
	"as", "case", "class", "data", "default", "deriving", "do", "else",
	"forall", "foreign", "hiding", "if", "import", "in", "infix", "infixl",
	"infixr", "instance", "let", "mdo", "module", "newtype", "of",
	"qualified", "rec", "then", "type", "where",
}

// reserved is the union of every list above. A parameter with one of these
// names would collide in at least one target.
var reserved = func() map[string]bool {
	m := make(map[string]bool)
	for _, list := range [][]string{generatorLocals, cKeywords, ocamlKeywords, haskellKeywords} {
		for _, w := range list {
			m[w] = true
		}
	}
	return m
}()

// IsReserved reports whether name is unusable as a parameter or field name.
func IsReserved(name string) bool {
	return reserved[name]
}
