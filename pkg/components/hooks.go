package components

import (
	"regexp"
	"slices"

	"github.com/gnana997/reactlint/pkg/syntax"
)

var hookNameRe = regexp.MustCompile(`^use[A-Z]`)

// IsHookName reports whether name follows the hook naming convention.
func IsHookName(name string) bool {
	return hookNameRe.MatchString(name)
}

// ImportRecord tracks how the framework module is imported in one file.
type ImportRecord struct {
	// Default is the local name of the default or namespace import, or "".
	Default string
	// Named maps local binding names to imported names.
	Named map[string]string
}

// HookImports returns the local-to-imported mapping of named hook imports.
func (r *ImportRecord) HookImports() map[string]string {
	out := make(map[string]string)
	for local, imported := range r.Named {
		if IsHookName(imported) {
			out[local] = imported
		}
	}
	return out
}

// collect reads every top-level import of the framework module in program.
func (r *ImportRecord) collect(program *syntax.Node, source string) {
	if r.Named == nil {
		r.Named = make(map[string]string)
	}
	for _, stmt := range program.NamedChildren() {
		if !stmt.Is(syntax.KindImportStatement) || importSource(stmt) != source {
			continue
		}
		for _, clause := range stmt.NamedChildren() {
			if !clause.Is("import_clause") {
				continue
			}
			for _, part := range clause.NamedChildren() {
				switch part.Kind() {
				case syntax.KindIdentifier:
					if r.Default == "" {
						r.Default = part.Text()
					}
				case "namespace_import":
					if id := part.FirstNamedChild(); id != nil && r.Default == "" {
						r.Default = id.Text()
					}
				case "named_imports":
					for _, spec := range part.NamedChildren() {
						if !spec.Is("import_specifier") {
							continue
						}
						name := spec.ChildByField("name")
						if name == nil {
							continue
						}
						local := name
						if alias := spec.ChildByField("alias"); alias != nil {
							local = alias
						}
						// `{ default as R }` is the default import under another name.
						if importedName(name) == "default" {
							if r.Default == "" {
								r.Default = local.Text()
							}
							continue
						}
						r.Named[local.Text()] = name.Text()
					}
				}
			}
		}
	}
}

// IsReactHookCall reports whether call invokes a framework hook, as
// `React.useX()` through the default import or `useX()` through a named
// import, and the identifier is not shadowed by a local declaration. When
// expected names are given, the original imported hook name must be one of
// them.
func (u *Utils) IsReactHookCall(call *syntax.Node, expected ...string) bool {
	if !call.Is(syntax.KindCallExpression) {
		return false
	}
	callee := call.ChildByField("function")

	var hookName string
	switch callee.Kind() {
	case syntax.KindMemberExpression:
		obj := callee.ChildByField("object")
		prop := callee.ChildByField("property")
		if u.imports.Default == "" || !obj.Is(syntax.KindIdentifier) || obj.Text() != u.imports.Default ||
			prop == nil || !IsHookName(prop.Text()) {
			return false
		}
		if u.isShadowed(obj) {
			return false
		}
		hookName = prop.Text()

	case syntax.KindIdentifier:
		imported, ok := u.imports.HookImports()[callee.Text()]
		if !ok || u.isShadowed(callee) {
			return false
		}
		hookName = imported

	default:
		return false
	}

	if len(expected) == 0 {
		return true
	}
	return slices.Contains(expected, hookName)
}

// isShadowed reports whether id resolves to a binding that is not an import.
func (u *Utils) isShadowed(id *syntax.Node) bool {
	v := u.ctx.Scopes.Resolve(id, id.Text())
	if v == nil {
		return false
	}
	for _, def := range v.Defs {
		if def.Kind != syntax.DefImportBinding {
			return true
		}
	}
	return false
}

// importedName returns the text of an import specifier's name, unquoting
// string names such as `{ "default" as R }`.
func importedName(name *syntax.Node) string {
	if v, ok := syntax.StringValue(name); ok {
		return v
	}
	return name.Text()
}
