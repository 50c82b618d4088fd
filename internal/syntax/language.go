package syntax

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	tsgolang "github.com/smacker/go-tree-sitter/golang"
	tspython "github.com/smacker/go-tree-sitter/python"
)

// Language bundles a tree-sitter grammar with the queries and node-kind
// tables this package needs to turn a parse tree into the fixed
// TokenClass/FoldRange/Symbol vocabularies.
type Language struct {
	Name       string
	Extensions []string

	grammar       *sitter.Language
	highlightSrc  []byte // tree-sitter query source for token classification
	highlightOnce sync.Once
	highlightQry  *sitter.Query

	// captureToClass maps a highlight query's capture name (e.g.
	// "function.builtin") to the fixed TokenClass vocabulary.
	captureToClass map[string]TokenClass

	// blockNodeKinds are named node kinds folded as FoldBlock (function
	// bodies, struct/class bodies, if/for/while blocks).
	blockNodeKinds map[string]bool
	// commentNodeKind is the node kind tree-sitter reports for comments;
	// used both for FoldComment and to exclude brackets inside comments.
	commentNodeKind map[string]bool
	// stringNodeKind similarly excludes brackets inside string literals.
	stringNodeKind map[string]bool

	// symbolNodeKinds maps a named node kind to the outline SymbolKind it
	// represents, plus the child field name holding the declaration name.
	symbolNodeKinds map[string]symbolRule
}

type symbolRule struct {
	kind      SymbolKind
	nameField string
}

// registry is the process-wide language table, keyed by file extension
// (including the leading dot) and by name.
type registry struct {
	mu         sync.RWMutex
	byExt      map[string]*Language
	byName     map[string]*Language
}

var defaultRegistry = newRegistry()

func newRegistry() *registry {
	r := &registry{
		byExt:  make(map[string]*Language),
		byName: make(map[string]*Language),
	}
	r.register(goLanguage())
	r.register(pythonLanguage())
	return r
}

func (r *registry) register(l *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[l.Name] = l
	for _, ext := range l.Extensions {
		r.byExt[ext] = l
	}
}

// DetectLanguage maps a file name to a registered Language by extension.
// An unrecognized extension returns (nil, false): callers fall back to
// plain-text classification.
func DetectLanguage(filename string) (*Language, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	l, ok := defaultRegistry.byExt[ext]
	return l, ok
}

// RegisterLanguage adds or replaces a language in the default registry, so
// embedders can add grammars this package doesn't ship with.
func RegisterLanguage(l *Language) {
	defaultRegistry.register(l)
}

func (l *Language) query() *sitter.Query {
	l.highlightOnce.Do(func() {
		if l.highlightSrc == nil {
			return
		}
		q, err := sitter.NewQuery(l.highlightSrc, l.grammar)
		if err != nil {
			// A malformed query leaves the language with no highlight
			// captures; Highlight then returns nil rather than failing
			// the parse.
			return
		}
		l.highlightQry = q
	})
	return l.highlightQry
}

func (l *Language) classify(captureName string) TokenClass {
	if c, ok := l.captureToClass[captureName]; ok {
		return c
	}
	// Fall back by stripping dotted suffixes, same strategy as TextMate
	// scope resolution: "function.builtin" falls back to "function".
	for i := len(captureName) - 1; i >= 0; i-- {
		if captureName[i] == '.' {
			captureName = captureName[:i]
			if c, ok := l.captureToClass[captureName]; ok {
				return c
			}
		}
	}
	return ClassPlain
}

func goLanguage() *Language {
	return &Language{
		Name:           "go",
		Extensions:     []string{".go"},
		grammar:        tsgolang.GetLanguage(),
		highlightSrc:   []byte(goHighlightQuery),
		captureToClass: goCaptureClasses,
		blockNodeKinds: map[string]bool{
			"function_declaration": true,
			"method_declaration":   true,
			"func_literal":         true,
			"if_statement":         true,
			"for_statement":        true,
			"block":                true,
			"struct_type":          true,
			"interface_type":       true,
		},
		commentNodeKind: map[string]bool{"comment": true},
		stringNodeKind: map[string]bool{
			"interpreted_string_literal": true,
			"raw_string_literal":         true,
			"rune_literal":               true,
		},
		symbolNodeKinds: map[string]symbolRule{
			"function_declaration": {kind: SymbolFunction, nameField: "name"},
			"method_declaration":   {kind: SymbolMethod, nameField: "name"},
			"type_spec":            {kind: SymbolStruct, nameField: "name"},
			"const_spec":           {kind: SymbolConst, nameField: "name"},
			"var_spec":             {kind: SymbolVariable, nameField: "name"},
		},
	}
}

func pythonLanguage() *Language {
	return &Language{
		Name:           "python",
		Extensions:     []string{".py", ".pyi"},
		grammar:        tspython.GetLanguage(),
		highlightSrc:   []byte(pythonHighlightQuery),
		captureToClass: pythonCaptureClasses,
		blockNodeKinds: map[string]bool{
			"function_definition": true,
			"class_definition":    true,
			"if_statement":        true,
			"for_statement":       true,
			"while_statement":     true,
			"with_statement":      true,
			"try_statement":       true,
		},
		commentNodeKind: map[string]bool{"comment": true},
		stringNodeKind:  map[string]bool{"string": true},
		symbolNodeKinds: map[string]symbolRule{
			"function_definition": {kind: SymbolFunction, nameField: "name"},
			"class_definition":    {kind: SymbolClass, nameField: "name"},
		},
	}
}

// Highlight query sources are intentionally minimal subsets of the
// standard nvim-treesitter highlight queries for each grammar, not a full
// port: their capture names reach every TokenClass except ClassMacro and
// ClassAttribute, which no capture here maps to.

const goHighlightQuery = `
(comment) @comment

(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(escape_sequence) @string.escape

(int_literal) @number
(float_literal) @number
(imaginary_literal) @number

[
  "func" "return" "if" "else" "for" "range" "switch" "case" "default"
  "go" "defer" "select" "chan" "interface" "struct" "map" "package"
  "import" "var" "const" "type" "break" "continue" "fallthrough" "goto"
] @keyword

(func_literal "func" @keyword)
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function.method)
(call_expression function: (identifier) @function.call)
(call_expression function: (selector_expression field: (field_identifier) @function.call))

(type_identifier) @type
(package_identifier) @type

(identifier) @variable
(field_identifier) @variable

"nil" @constant
"true" @constant
"false" @constant
(const_spec name: (identifier) @constant)

[ "+" "-" "*" "/" "%" "&" "|" "^" "<<" ">>" "&^" "=" ":=" "==" "!=" "<" "<=" ">" ">=" "&&" "||" "!" "<-" ] @operator
[ "(" ")" "[" "]" "{" "}" "," ";" "." ] @punctuation
`

var goCaptureClasses = map[string]TokenClass{
	"comment":        ClassComment,
	"string":         ClassString,
	"string.escape":  ClassString,
	"number":         ClassNumber,
	"keyword":        ClassKeyword,
	"function":       ClassFunction,
	"function.method": ClassFunction,
	"function.call":  ClassFunction,
	"type":           ClassType,
	"variable":       ClassVariable,
	"constant":       ClassConstant,
	"operator":       ClassOperator,
	"punctuation":    ClassPunctuation,
}

const pythonHighlightQuery = `
(comment) @comment
(string) @string

(integer) @number
(float) @number

[
  "def" "return" "if" "elif" "else" "for" "while" "with" "as" "import"
  "from" "class" "try" "except" "finally" "raise" "lambda" "global"
  "nonlocal" "pass" "break" "continue" "yield" "async" "await" "in" "is" "not" "and" "or"
] @keyword

(function_definition name: (identifier) @function)
(class_definition name: (identifier) @type)
(call function: (identifier) @function.call)
(call function: (attribute attribute: (identifier) @function.call))

(identifier) @variable
"None" @constant
"True" @constant
"False" @constant

[ "+" "-" "*" "/" "%" "**" "//" "=" "==" "!=" "<" "<=" ">" ">=" "and" "or" "not" ] @operator
[ "(" ")" "[" "]" "{" "}" "," ":" "." ] @punctuation
`

var pythonCaptureClasses = map[string]TokenClass{
	"comment":      ClassComment,
	"string":       ClassString,
	"number":       ClassNumber,
	"keyword":      ClassKeyword,
	"function":     ClassFunction,
	"function.call": ClassFunction,
	"type":         ClassType,
	"variable":     ClassVariable,
	"constant":     ClassConstant,
	"operator":     ClassOperator,
	"punctuation":  ClassPunctuation,
}
