package errors

// Registered error codes.
const (
	// Tree errors (V001-V039)
	CodeNotFound         = "V001"
	CodeNoParent         = "V002"
	CodeReadOnly         = "V003"
	CodeNoListeners      = "V004"
	CodeForeignNode      = "V005"
	CodeHierarchyRequest = "V006"
	CodeUnknownProperty  = "V007"
	CodeInvalidValue     = "V008"

	// Protocol errors (V060-V079)
	CodeInvalidFrame  = "V060"
	CodeUnknownOp     = "V061"
	CodeUnknownNode   = "V062"
	CodeEventRejected = "V063"

	// Config errors (V100-V119)
	CodeConfigNotFound = "V100"
	CodeConfigInvalid  = "V101"
	CodeConfigSyntax   = "V102"

	// CLI errors (V120-V139)
	CodeInputUnreadable = "V120"
	CodeInputInvalid    = "V121"
	CodePublishFailed   = "V122"
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
	// Tree Errors (V001-V039)
	// ============================================

	CodeNotFound: {
		Category: CategoryTree,
		Message:  "Node not found",
		Detail:   "The node is neither a top-level node nor an indexed descendant of the tree, or it is not a child of the element the operation was called on.",
	},
	CodeNoParent: {
		Category: CategoryTree,
		Message:  "Node has no parent",
		Detail:   "The node is neither top-level in its tree nor attached to a parent element, so there is no position to insert relative to.",
	},
	CodeReadOnly: {
		Category: CategoryTree,
		Message:  "Property is read-only",
		Detail:   "The property is derived from other state and cannot be assigned.",
	},
	CodeForeignNode: {
		Category: CategoryTree,
		Message:  "Node belongs to another tree",
		Detail:   "Nodes are bound to the tree that created them and cannot move between trees.",
	},
	CodeHierarchyRequest: {
		Category: CategoryTree,
		Message:  "Invalid hierarchy",
		Detail:   "A node cannot be inserted into itself or into one of its own descendants.",
	},
	CodeUnknownProperty: {
		Category: CategoryTree,
		Message:  "Unknown property",
		Detail:   "The property name is not one of the element's known properties.",
	},
	CodeInvalidValue: {
		Category: CategoryTree,
		Message:  "Invalid property value",
		Detail:   "The value has the wrong type for the property it was assigned to.",
	},

	// ============================================
	// Event Errors (V040-V059)
	// ============================================

	CodeNoListeners: {
		Category: CategoryEvent,
		Message:  "No listeners for event type",
		Detail:   "DispatchEvent requires at least one listener registered for the event type on the target.",
	},

	// ============================================
	// Protocol Errors (V060-V079)
	// ============================================

	CodeInvalidFrame: {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The received frame could not be decoded.",
	},
	CodeUnknownOp: {
		Category: CategoryProtocol,
		Message:  "Unknown record operation",
		Detail:   "The record operation is not recognized by this protocol version.",
	},
	CodeUnknownNode: {
		Category: CategoryProtocol,
		Message:  "Unknown node",
		Detail:   "The node ID referenced by the frame does not exist in the served tree.",
	},
	CodeEventRejected: {
		Category: CategoryProtocol,
		Message:  "Event rejected",
		Detail:   "The client event could not be dispatched on the target node.",
	},

	// ============================================
	// Config Errors (V100-V119)
	// ============================================

	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No vtree.json was found in the given directory or any of its parents.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or malformed.",
	},
	CodeConfigSyntax: {
		Category: CategoryConfig,
		Message:  "Configuration syntax error",
		Detail:   "vtree.json is not valid JSON.",
	},

	// ============================================
	// CLI Errors (V120-V139)
	// ============================================

	CodeInputUnreadable: {
		Category: CategoryCLI,
		Message:  "Input file unreadable",
		Detail:   "The HTML input could not be opened or read.",
	},
	CodeInputInvalid: {
		Category: CategoryCLI,
		Message:  "Input could not be imported",
		Detail:   "The HTML input could not be parsed into a tree.",
	},
	CodePublishFailed: {
		Category: CategoryCLI,
		Message:  "Publish failed",
		Detail:   "The snapshot could not be uploaded to the object store.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
