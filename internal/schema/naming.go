package schema

import (
	"regexp"
	"strings"
)

var (
	caseBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	nonIdentChar = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// SnakeCase converts a camel-case identifier to lower snake case by inserting
// an underscore at every lower-to-upper boundary and replacing every character
// outside [A-Za-z0-9_] with an underscore. "OrderItem" becomes "order_item",
// "customerID" becomes "customer_id" and "Order-Line" becomes "order_line".
func SnakeCase(name string) string {
	s := caseBoundary.ReplaceAllString(name, "${1}_${2}")
	s = nonIdentChar.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}
