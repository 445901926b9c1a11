package arm

import (
	"fmt"
	"strings"
)

// ARM template expression builders. Expressions are plain strings of the
// form "[fn(arg, ...)]". Arguments that are themselves expressions are
// inlined without their outer brackets so they nest the way the template
// language expects, e.g. [guid(resourceId(...), 'x')].

// ResourceIDExpr builds a "[resourceId('type', 'name'...)]" expression. For
// nested resource types each name segment is passed as an additional
// argument.
func ResourceIDExpr(resourceType string, names ...string) string {
	args := make([]string, 0, len(names)+1)
	args = append(args, quoteArg(resourceType))
	for _, n := range names {
		args = append(args, quoteArg(n))
	}
	return fmt.Sprintf("[resourceId(%s)]", strings.Join(args, ", "))
}

// SubscriptionResourceIDExpr builds a "[subscriptionResourceId(...)]"
// expression, used for subscription-level resources such as built-in role
// definitions.
func SubscriptionResourceIDExpr(resourceType string, names ...string) string {
	args := make([]string, 0, len(names)+1)
	args = append(args, quoteArg(resourceType))
	for _, n := range names {
		args = append(args, quoteArg(n))
	}
	return fmt.Sprintf("[subscriptionResourceId(%s)]", strings.Join(args, ", "))
}

// GUIDExpr builds a "[guid(...)]" expression. The result is a pure function
// of its arguments, so repeated synthesis of the same tree yields the same
// name.
func GUIDExpr(parts ...string) string {
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = quoteArg(p)
	}
	return fmt.Sprintf("[guid(%s)]", strings.Join(args, ", "))
}

// ReferenceExpr builds a "[reference(...).properties.<property>]" expression
// resolving a runtime property of another resource, such as a managed
// identity's principalId.
func ReferenceExpr(resourceID, apiVersion, property string) string {
	return fmt.Sprintf("[reference(%s, %s, 'Full').properties.%s]",
		quoteArg(resourceID), quoteArg(apiVersion), property)
}

// IsExpr reports whether s is a bracketed template expression.
func IsExpr(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

func quoteArg(s string) string {
	if IsExpr(s) {
		return strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	}
	return "'" + s + "'"
}
