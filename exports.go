package messageformat

import (
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/functions"
)

// Aliases re-exported at the root so common callers need only this one
// import: the constructor, validation, the error constructors, and the
// data-model type guards.
var (
	NewMessageFormat = New

	ValidateMessage = datamodel.ValidateMessage

	NewMessageSyntaxError     = errors.NewMessageSyntaxError
	NewMessageResolutionError = errors.NewMessageResolutionError
	NewMessageSelectionError  = errors.NewMessageSelectionError

	IsExpression     = datamodel.IsExpression
	IsFunctionRef    = datamodel.IsFunctionRef
	IsLiteral        = datamodel.IsLiteral
	IsMarkup         = datamodel.IsMarkup
	IsMessage        = datamodel.IsMessage
	IsPatternMessage = datamodel.IsPatternMessage
	IsSelectMessage  = datamodel.IsSelectMessage
	IsVariableRef    = datamodel.IsVariableRef
	IsCatchallKey    = datamodel.IsCatchallKey
)

// DefaultFunctions is the required built-in function set.
var DefaultFunctions = functions.DefaultFunctions

// DraftFunctions is the additional draft formatter set.
var DraftFunctions = functions.DraftFunctions
