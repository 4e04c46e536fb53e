package core

import "fmt"

// Visibility is the access level of a method in a MethodTable.
type Visibility int

// Visibility levels. The zero value is Public.
const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}
