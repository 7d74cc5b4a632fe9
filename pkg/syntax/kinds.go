package syntax

// Node kinds shared by the tree-sitter JavaScript and TypeScript grammars.
// Older grammar releases call function expressions "function"; both are
// accepted.
const (
	KindProgram             = "program"
	KindFunctionDeclaration = "function_declaration"
	KindGeneratorDecl       = "generator_function_declaration"
	KindFunctionExpression  = "function_expression"
	KindFunctionLegacy      = "function"
	KindGeneratorFunction   = "generator_function"
	KindArrowFunction       = "arrow_function"
	KindMethodDefinition    = "method_definition"
	KindClassDeclaration    = "class_declaration"
	KindClass               = "class"
	KindCallExpression      = "call_expression"
	KindMemberExpression    = "member_expression"
	KindIdentifier          = "identifier"
	KindObject              = "object"
	KindPair                = "pair"
	KindReturnStatement     = "return_statement"
	KindVariableDeclarator  = "variable_declarator"
	KindAssignment          = "assignment_expression"
	KindExportStatement     = "export_statement"
	KindImportStatement     = "import_statement"
	KindThis                = "this"
	KindNull                = "null"
	KindDecorator           = "decorator"
)

var functionKinds = map[string]bool{
	KindFunctionDeclaration: true,
	KindGeneratorDecl:       true,
	KindFunctionExpression:  true,
	KindFunctionLegacy:      true,
	KindGeneratorFunction:   true,
	KindArrowFunction:       true,
	KindMethodDefinition:    true,
}

// FunctionKinds lists every function-like node kind.
var FunctionKinds = []string{
	KindFunctionDeclaration,
	KindGeneratorDecl,
	KindFunctionExpression,
	KindFunctionLegacy,
	KindGeneratorFunction,
	KindArrowFunction,
	KindMethodDefinition,
}

// IsFunction reports whether n is function-like (declaration, expression,
// arrow, generator or method).
func IsFunction(n *Node) bool {
	return n != nil && functionKinds[n.kind]
}

// IsFunctionExpression reports whether n is a function or arrow expression
// (not a declaration and not a method).
func IsFunctionExpression(n *Node) bool {
	return n.Is(KindFunctionExpression, KindFunctionLegacy, KindGeneratorFunction, KindArrowFunction)
}

// IsFunctionDeclaration reports whether n declares a named function statement.
func IsFunctionDeclaration(n *Node) bool {
	return n.Is(KindFunctionDeclaration, KindGeneratorDecl)
}

// IsClass reports whether n is a class declaration or expression.
func IsClass(n *Node) bool {
	return n.Is(KindClassDeclaration, KindClass)
}

// IsJSX reports whether n is a JSX element, self-closing element or fragment.
func IsJSX(n *Node) bool {
	return n.Is("jsx_element", "jsx_self_closing_element", "jsx_fragment")
}

// IsGenerator reports whether a function-like node is a generator.
func IsGenerator(n *Node) bool {
	if n.Is(KindGeneratorDecl, KindGeneratorFunction) {
		return true
	}
	// Generator methods carry a "*" token.
	return n.Is(KindMethodDefinition) && n.HasToken("*")
}

// IsAsync reports whether a function-like node is declared async.
func IsAsync(n *Node) bool {
	return IsFunction(n) && n.HasToken("async")
}

// FunctionName returns the function's own name identifier, or nil.
func FunctionName(fn *Node) *Node {
	if fn.Is(KindArrowFunction) {
		return nil
	}
	return fn.ChildByField("name")
}

// FunctionBody returns the body of a function-like node.
func FunctionBody(fn *Node) *Node {
	return fn.ChildByField("body")
}

// FunctionParams returns the parameter nodes of a function-like node,
// including the bare parameter of `x => ...`.
func FunctionParams(fn *Node) []*Node {
	if p := fn.ChildByField("parameter"); p != nil {
		return []*Node{p}
	}
	params := fn.ChildByField("parameters")
	if params == nil {
		return nil
	}
	return params.NamedChildren()
}

// ClassSuperclass returns the expression after `extends`, or nil. Both the
// JavaScript (class_heritage > expression) and TypeScript
// (class_heritage > extends_clause > value) shapes are handled.
func ClassSuperclass(class *Node) *Node {
	for _, c := range class.NamedChildren() {
		if c.kind != "class_heritage" {
			continue
		}
		for _, h := range c.NamedChildren() {
			if h.kind == "extends_clause" {
				if v := h.ChildByField("value"); v != nil {
					return v
				}
				return h.FirstNamedChild()
			}
			if h.kind != "implements_clause" {
				return h
			}
		}
	}
	return nil
}

// StringValue returns the unquoted content of a string literal node.
func StringValue(n *Node) (string, bool) {
	if !n.Is("string") {
		return "", false
	}
	for _, c := range n.NamedChildren() {
		if c.kind == "string_fragment" {
			return c.Text(), true
		}
	}
	text := n.Text()
	if len(text) >= 2 {
		return text[1 : len(text)-1], true
	}
	return "", true
}

// PropertyKeyName returns the static name of a pair/method key:
// identifiers, string literals and numbers. Computed keys return false.
func PropertyKeyName(key *Node) (string, bool) {
	switch {
	case key == nil:
		return "", false
	case key.Is("property_identifier", "identifier", "private_property_identifier", "number"):
		return key.Text(), true
	case key.Is("string"):
		return StringValue(key)
	}
	return "", false
}
