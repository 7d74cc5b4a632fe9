package components

// Default framework names.
const (
	DefaultPragma       = "React"
	DefaultCreateClass  = "createReactClass"
	DefaultImportSource = "react"

	// PragmaObject in WrapperFunction.Object stands for the configured pragma.
	PragmaObject = "<pragma>"
)

// WrapperFunction describes a higher-order component wrapper such as
// `React.memo` or a user's own `connect`.
type WrapperFunction struct {
	// Property is the called function name, e.g. "memo".
	Property string `yaml:"property" json:"property"`
	// Object, when set, is the namespace the function is accessed through.
	Object string `yaml:"object,omitempty" json:"object,omitempty"`
}

// Settings are the per-project values the detection engine reads.
type Settings struct {
	Pragma           string
	CreateClass      string
	ImportSource     string
	WrapperFunctions []WrapperFunction
}

// DefaultSettings returns settings for a plain React project.
func DefaultSettings() Settings {
	return Settings{
		Pragma:       DefaultPragma,
		CreateClass:  DefaultCreateClass,
		ImportSource: DefaultImportSource,
	}
}

// withDefaults fills empty fields.
func (s Settings) withDefaults() Settings {
	if s.Pragma == "" {
		s.Pragma = DefaultPragma
	}
	if s.CreateClass == "" {
		s.CreateClass = DefaultCreateClass
	}
	if s.ImportSource == "" {
		s.ImportSource = DefaultImportSource
	}
	return s
}

// Wrappers returns the configured wrappers with the pragma placeholder
// resolved, followed by forwardRef and memo on the pragma.
func (s Settings) Wrappers() []WrapperFunction {
	s = s.withDefaults()
	out := make([]WrapperFunction, 0, len(s.WrapperFunctions)+2)
	for _, w := range s.WrapperFunctions {
		if w.Object == PragmaObject {
			w.Object = s.Pragma
		}
		out = append(out, w)
	}
	return append(out,
		WrapperFunction{Property: "forwardRef", Object: s.Pragma},
		WrapperFunction{Property: "memo", Object: s.Pragma},
	)
}
