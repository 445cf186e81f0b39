package summary

// ModuleSummary is the structural summary of one Python source file.
type ModuleSummary struct {
	// ModuleDoc is the module docstring, "" when absent.
	ModuleDoc string `json:"module_doc,omitempty"`

	// Classes holds every top-level class in source order. A duplicated
	// class name replaces the earlier entry in place.
	Classes []Class `json:"classes"`

	// TopLevelFunctions holds functions defined outside any class,
	// excluding the one named main.
	TopLevelFunctions []FunctionInfo `json:"top_level_functions"`

	// MainFunction is the top-level function literally named main, if any.
	MainFunction *FunctionInfo `json:"main_function,omitempty"`

	// IsExecutable reports whether the module has a top-level
	// if __name__ == "__main__" guard.
	IsExecutable bool `json:"is_executable"`
}

// Class groups the methods defined in one class body, in source order.
type Class struct {
	Name    string         `json:"name"`
	Methods []FunctionInfo `json:"methods"`
}

// FunctionInfo describes one function or method. Methods and functions
// share the same shape.
type FunctionInfo struct {
	Name string `json:"name"`

	// Parameters lists positional parameter names only. Variadic,
	// keyword-only, and default-value details are not modeled.
	Parameters []string `json:"parameters"`

	// Doc is the function docstring, "" when absent.
	Doc string `json:"doc,omitempty"`

	// Returns lists every return statement in the body, in the order a
	// depth-first top-to-bottom walk encounters them.
	Returns []ReturnInfo `json:"returns"`
}

// ReturnInfo records one return statement and the if/else predicates that
// enclose it.
type ReturnInfo struct {
	// SourceLine is the trimmed text of the physical source line holding
	// the return statement.
	SourceLine string `json:"line"`

	// Conditions holds the predicates active at this return, outermost
	// first. Returns reached through an else branch carry the negated
	// form not (<test>).
	Conditions []string `json:"conditions"`
}

// addMethod appends a method to the named class, registering the class if
// the walker has not seen it yet.
func (ms *ModuleSummary) addMethod(class string, fn FunctionInfo) {
	for i := range ms.Classes {
		if ms.Classes[i].Name == class {
			ms.Classes[i].Methods = append(ms.Classes[i].Methods, fn)
			return
		}
	}
	ms.Classes = append(ms.Classes, Class{Name: class, Methods: []FunctionInfo{fn}})
}

// ClassNamed returns the named class, or nil.
func (ms *ModuleSummary) ClassNamed(name string) *Class {
	for i := range ms.Classes {
		if ms.Classes[i].Name == name {
			return &ms.Classes[i]
		}
	}
	return nil
}
