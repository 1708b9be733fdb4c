package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Op is a whitelisted comparison operator. Anything outside this set is
// rejected before SQL is assembled.
type Op string

const (
	OpEq      Op = "="
	OpGt      Op = ">"
	OpLt      Op = "<"
	OpGte     Op = ">="
	OpLte     Op = "<="
	OpNeq     Op = "!="
	OpNeqAlt  Op = "<>"
	OpLike    Op = "LIKE"
	OpNotLike Op = "NOT LIKE"
	OpIn      Op = "IN"
	OpNotIn   Op = "NOT IN"
	OpIs      Op = "IS"
	OpIsNot   Op = "IS NOT"
)

var allowedOps = map[Op]bool{
	OpEq: true, OpGt: true, OpLt: true, OpGte: true, OpLte: true,
	OpNeq: true, OpNeqAlt: true, OpLike: true, OpNotLike: true,
	OpIn: true, OpNotIn: true, OpIs: true, OpIsNot: true,
}

// identRegex is the only defense against injection through table and column
// names, which cannot be bound as parameters.
var identRegex = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// Cond is one WHERE term. Values are always bound as parameters, except for
// IS / IS NOT which take no parameter at all.
type Cond struct {
	Column string
	Op     Op
	Value  any
}

// Eq builds an implicit-equality condition, the common case.
func Eq(column string, value any) Cond {
	return Cond{Column: column, Op: OpEq, Value: value}
}

// Where parses the legacy "column OPERATOR" key form, e.g.
// Where("failed_login_attempts >=", 5) or Where("deleted_at IS", nil).
// A bare column name means equality.
func Where(key string, value any) Cond {
	parts := strings.SplitN(strings.TrimSpace(key), " ", 2)
	if len(parts) == 1 {
		return Eq(parts[0], value)
	}
	return Cond{Column: parts[0], Op: Op(strings.ToUpper(strings.TrimSpace(parts[1]))), Value: value}
}

func (c Cond) compile(sb *strings.Builder, args *[]any) error {
	if !identRegex.MatchString(c.Column) {
		return fmt.Errorf("%w: bad column identifier %q", ErrInvalidArgument, c.Column)
	}
	if !allowedOps[c.Op] {
		return fmt.Errorf("%w: operator %q not allowed", ErrInvalidArgument, string(c.Op))
	}

	switch c.Op {
	case OpIn, OpNotIn:
		values, err := expandList(c.Value)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return fmt.Errorf("%w: %s requires a non-empty value list", ErrInvalidArgument, c.Op)
		}
		placeholders := strings.Repeat("?,", len(values))
		fmt.Fprintf(sb, "%s %s (%s)", c.Column, c.Op, placeholders[:len(placeholders)-1])
		*args = append(*args, values...)
	case OpIs, OpIsNot:
		if c.Value != nil {
			return fmt.Errorf("%w: %s only compares against NULL", ErrInvalidArgument, c.Op)
		}
		fmt.Fprintf(sb, "%s %s NULL", c.Column, c.Op)
	default:
		fmt.Fprintf(sb, "%s %s ?", c.Column, c.Op)
		*args = append(*args, c.Value)
	}
	return nil
}

func expandList(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, nil
	case []uint:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, nil
	case []int64:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: IN value must be a slice, got %T", ErrInvalidArgument, value)
	}
}

// CompileConditions assembles a parameterized WHERE clause from conds.
// An empty clause (no conditions) returns "" and no args.
func CompileConditions(conds []Cond) (string, []any, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}
	var sb strings.Builder
	var args []any
	for i, cond := range conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		if err := cond.compile(&sb, &args); err != nil {
			return "", nil, err
		}
	}
	return sb.String(), args, nil
}

// Count returns the number of rows in table matching all conds. The table
// name goes through the same identifier check as columns.
func Count(ctx context.Context, db *gorm.DB, table string, conds ...Cond) (int64, error) {
	if !identRegex.MatchString(table) {
		return 0, fmt.Errorf("%w: bad table identifier %q", ErrInvalidArgument, table)
	}
	clause, args, err := CompileConditions(conds)
	if err != nil {
		return 0, err
	}
	query := "SELECT COUNT(*) FROM " + table
	if clause != "" {
		query += " WHERE " + clause
	}
	var count int64
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}
