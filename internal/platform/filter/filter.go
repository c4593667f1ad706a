// Package filter provides AIP-160 filter expression parsing and SQL translation.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FieldType names the value type a filter field accepts.
type FieldType int

const (
	String FieldType = iota
	Int
	Bool
	// Timestamp fields accept timestamp("RFC3339") values and compare against
	// UTC millisecond columns.
	Timestamp
)

// Field maps one filter identifier onto a SQL column.
type Field struct {
	Column string
	Type   FieldType
}

// Schema declares the identifiers a filter may reference.
type Schema map[string]Field

// Fields returns the sorted identifier names, for help text.
func (s Schema) Fields() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Schema) declarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, name := range s.Fields() {
		opts = append(opts, filtering.DeclareIdent(name, s[name].Type.aipType()))
	}
	return filtering.NewDeclarations(opts...)
}

func (t FieldType) aipType() *expr.Type {
	switch t {
	case Int:
		return filtering.TypeInt
	case Bool:
		return filtering.TypeBool
	case Timestamp:
		return filtering.TypeTimestamp
	default:
		return filtering.TypeString
	}
}

// SQLCondition represents a SQL WHERE clause fragment with parameters.
type SQLCondition struct {
	// Clause is the SQL WHERE clause (e.g., "category = ?").
	Clause string
	// Params are the positional parameters for the clause.
	Params []any
}

// Empty reports whether the condition filters nothing.
func (c SQLCondition) Empty() bool {
	return strings.TrimSpace(c.Clause) == ""
}

// Parse parses an AIP-160 filter expression against schema and returns a SQL
// condition. An empty filter string yields an empty condition.
func Parse(schema Schema, filterStr string) (SQLCondition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return SQLCondition{}, nil
	}
	decls, err := schema.declarations()
	if err != nil {
		return SQLCondition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return SQLCondition{}, fmt.Errorf("parse filter: %w", err)
	}
	t := translator{schema: schema}
	return t.translateExpr(parsed.CheckedExpr.GetExpr())
}

type translator struct {
	schema Schema
}

func (t translator) translateExpr(e *expr.Expr) (SQLCondition, error) {
	if e == nil {
		return SQLCondition{}, nil
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return t.translateCall(kind.CallExpr)
	case *expr.Expr_IdentExpr:
		// A bare boolean identifier, e.g. "featured".
		field, ok := t.schema[kind.IdentExpr.GetName()]
		if !ok || field.Type != Bool {
			return SQLCondition{}, fmt.Errorf("unsupported bare identifier: %s", kind.IdentExpr.GetName())
		}
		return SQLCondition{Clause: field.Column + " = ?", Params: []any{true}}, nil
	default:
		return SQLCondition{}, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func (t translator) translateCall(call *expr.Expr_Call) (SQLCondition, error) {
	switch call.GetFunction() {
	case "_&&_", "AND":
		return t.translateJunction(call.GetArgs(), "AND")
	case "_||_", "OR":
		return t.translateJunction(call.GetArgs(), "OR")
	case "NOT", "-":
		if len(call.GetArgs()) != 1 {
			return SQLCondition{}, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := t.translateExpr(call.GetArgs()[0])
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: fmt.Sprintf("NOT (%s)", inner.Clause), Params: inner.Params}, nil
	case "_==_", "=":
		return t.translateComparison(call.GetArgs(), "=")
	case "_!=_", "!=":
		return t.translateComparison(call.GetArgs(), "!=")
	case "_<_", "<":
		return t.translateComparison(call.GetArgs(), "<")
	case "_<=_", "<=":
		return t.translateComparison(call.GetArgs(), "<=")
	case "_>_", ">":
		return t.translateComparison(call.GetArgs(), ">")
	case "_>=_", ">=":
		return t.translateComparison(call.GetArgs(), ">=")
	default:
		return SQLCondition{}, fmt.Errorf("unsupported function: %s", call.GetFunction())
	}
}

func (t translator) translateJunction(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) < 2 {
		return SQLCondition{}, fmt.Errorf("%s requires at least 2 arguments", op)
	}
	clauses := make([]string, 0, len(args))
	var params []any
	for _, arg := range args {
		cond, err := t.translateExpr(arg)
		if err != nil {
			return SQLCondition{}, err
		}
		clauses = append(clauses, cond.Clause)
		params = append(params, cond.Params...)
	}
	return SQLCondition{
		Clause: "(" + strings.Join(clauses, " "+op+" ") + ")",
		Params: params,
	}, nil
}

func (t translator) translateComparison(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("comparison requires 2 arguments")
	}
	name, err := extractFieldName(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	field, ok := t.schema[name]
	if !ok {
		return SQLCondition{}, fmt.Errorf("unknown field: %s", name)
	}
	value, err := extractValue(args[1], field.Type)
	if err != nil {
		return SQLCondition{}, err
	}
	return SQLCondition{
		Clause: fmt.Sprintf("%s %s ?", field.Column, op),
		Params: []any{value},
	}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.GetName(), nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr, fieldType FieldType) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.GetFunction() == "timestamp" && len(kind.CallExpr.GetArgs()) == 1 && fieldType == Timestamp {
			return extractTimestampMillis(kind.CallExpr.GetArgs()[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.GetFunction())
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}
	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return int64(kind.Uint64Value), nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

func extractTimestampMillis(e *expr.Expr) (int64, error) {
	constExpr, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a constant string")
	}
	raw, ok := constExpr.ConstExpr.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a string")
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw.StringValue)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp format: %s", raw.StringValue)
	}
	return parsed.UTC().UnixMilli(), nil
}
