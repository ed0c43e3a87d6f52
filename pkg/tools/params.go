package tools

import (
	"sort"
	"strings"
)

// arguments are the validated arguments of a call. Only declared parameters
// of the declared type are present.
type arguments map[string]any

// validate checks args against def before anything else happens: required
// parameters must be present (and non-blank when they are strings), every
// present parameter must have its declared type and enum value, and no
// undeclared parameter may be passed.
func validate(def Definition, args map[string]any) (arguments, *Error) {
	out := arguments{}

	for _, param := range def.Params {
		val, exists := args[param.Name]
		if !exists || val == nil {
			if param.Required {
				return nil, invalidArguments(param.Name, "missing required parameter")
			}
			continue
		}

		switch param.Type {
		case TypeBoolean:
			b, ok := val.(bool)
			if !ok {
				return nil, invalidArguments(param.Name, "must be a boolean")
			}
			out[param.Name] = b

		case TypeString:
			str, ok := val.(string)
			if !ok {
				return nil, invalidArguments(param.Name, "must be a string")
			}

			if strings.TrimSpace(str) == "" {
				if param.Required {
					return nil, invalidArguments(param.Name, "must not be empty")
				}
				continue
			}

			if len(param.Enum) > 0 {
				normalized := strings.ToLower(strings.TrimSpace(str))
				if !contains(param.Enum, normalized) {
					return nil, invalidArguments(
						param.Name, "%q is not one of: %s", str, strings.Join(param.Enum, ", "),
					)
				}
				str = normalized
			}

			out[param.Name] = str
		}
	}

	var unknown []string
	for name := range args {
		if _, ok := def.param(name); !ok {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, invalidArguments(unknown[0], "is not a parameter of %s", def.Name)
	}

	return out, nil
}

// str returns a validated string argument.
func (args arguments) str(name string) (string, bool) {
	val, ok := args[name].(string)
	return val, ok
}

// boolean returns a validated boolean argument, or fallback when absent.
func (args arguments) boolean(name string, fallback bool) bool {
	if val, ok := args[name].(bool); ok {
		return val
	}

	return fallback
}

func contains(values []string, want string) bool {
	for _, val := range values {
		if val == want {
			return true
		}
	}

	return false
}
