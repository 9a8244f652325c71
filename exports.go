package invoicing

import "github.com/xraph/invoicing/types"

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Money constructors
var (
	USD        = types.USD
	EUR        = types.EUR
	GBP        = types.GBP
	JPY        = types.JPY
	CAD        = types.CAD
	AUD        = types.AUD
	Zero       = types.Zero
	FromMinor  = types.FromMinor
	ParseMajor = types.ParseMajor
	Sum        = types.Sum
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
