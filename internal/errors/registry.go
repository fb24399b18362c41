package errors

// Stable code constants, for structured log fields and tests.
const (
	CodeKeyCollision  = "E001"
	CodeCreateFailed  = "E002"
	CodeBadCombinator = "E003"
	CodeConfigInvalid = "E010"
	CodeConfigRead    = "E011"
	CodeInspectServe  = "E020"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Usage Errors (E001-E009)
	// ============================================

	CodeKeyCollision: {
		Category: CategoryUsage,
		Message:  "Sibling elements hashed to the same key",
		Detail:   "Two children of the same type at the same position are indistinguishable to the reconciler and will be treated as one node. Give each an explicit identity with Identify.",
	},
	CodeCreateFailed: {
		Category: CategoryRuntime,
		Message:  "Native resource creation failed",
		Detail:   "The renderer rejected the create call. The element stays absent from the handle map this tick; creation is retried on the next differing update.",
	},
	CodeBadCombinator: {
		Category: CategoryUsage,
		Message:  "Children attached to a non-leaf element",
		Detail:   "Child, Children, and MaybeChild apply to built leaves. Attach children before wrapping the element with Project or Dynamic.",
	},

	// ============================================
	// Config Errors (E010-E019)
	// ============================================

	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "One or more fields in the configuration file are out of range. See the field named in the error detail.",
	},
	CodeConfigRead: {
		Category: CategoryConfig,
		Message:  "Configuration file could not be read",
		Detail:   "The file is missing or not valid JSON.",
	},

	// ============================================
	// Inspect Errors (E020-E029)
	// ============================================

	CodeInspectServe: {
		Category: CategoryInspect,
		Message:  "Inspect server failed to serve",
		Detail:   "The debug HTTP listener could not be started or terminated abnormally.",
	},
}

// Template returns the registered template for a code.
func Template(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
