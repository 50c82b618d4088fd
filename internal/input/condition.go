package input

import "strings"

// Context is the state a binding's When expression is evaluated
// against: the active mode, file type, and free-form condition/
// variable tables a host application can populate (editorReadonly,
// hasSelection, resourceLangId, ...).
type Context struct {
	Mode       string
	FileType   string
	Conditions map[string]bool
	Variables  map[string]string
}

// NewContext returns a Context with initialized condition/variable
// tables.
func NewContext() Context {
	return Context{
		Conditions: make(map[string]bool),
		Variables:  make(map[string]string),
	}
}

// evaluateWhen evaluates a binding's When expression. Grammar is the
// small subset a keybinding file needs: bare condition names,
// negation (!cond), conjunction/disjunction (&&, ||, left-to-right,
// no operator precedence beyond OR binding loosest), and a single
// variable equality check (name == value). An empty expression always
// matches.
func evaluateWhen(expr string, ctx Context) bool {
	if expr == "" {
		return true
	}
	return evalExpr(expr, ctx)
}

func evalExpr(expr string, ctx Context) bool {
	for i := 0; i < len(expr)-1; i++ {
		if expr[i] == '|' && expr[i+1] == '|' {
			left := evalExpr(strings.TrimSpace(expr[:i]), ctx)
			right := evalExpr(strings.TrimSpace(expr[i+2:]), ctx)
			return left || right
		}
	}
	for i := 0; i < len(expr)-1; i++ {
		if expr[i] == '&' && expr[i+1] == '&' {
			left := evalExpr(strings.TrimSpace(expr[:i]), ctx)
			right := evalExpr(strings.TrimSpace(expr[i+2:]), ctx)
			return left && right
		}
	}

	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "!") {
		return !evalExpr(strings.TrimSpace(expr[1:]), ctx)
	}

	for i := 0; i < len(expr)-1; i++ {
		if expr[i] == '=' && expr[i+1] == '=' {
			left := strings.TrimSpace(expr[:i])
			right := strings.TrimSpace(expr[i+2:])
			if left == "mode" {
				return ctx.Mode == right
			}
			if left == "fileType" || left == "resourceLangId" {
				return ctx.FileType == right
			}
			if val, ok := ctx.Variables[left]; ok {
				return val == right
			}
			return false
		}
	}

	return ctx.Conditions[expr]
}
