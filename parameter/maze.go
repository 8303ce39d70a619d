package parameter

// Layout tokens
const (
	// LayoutBlockToken marks a blocking cell in a layout file; every other token is decorative
	LayoutBlockToken = "x"

	// LayoutSeparator separates tokens within a row
	LayoutSeparator = " "
)

// Generated layout defaults, used when no layout file is configured
const (
	GeneratedCols     = 15
	GeneratedRows     = 11
	GeneratedBraiding = 0.8
)
