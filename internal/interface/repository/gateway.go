package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taesko/freefall/internal/domain/apperr"
)

const pgUniqueViolation = "23505"

// ErrConflict is returned when a write hits a unique constraint.
var ErrConflict = errors.New("unique constraint violation")

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Row is implemented by every GORM model the gateway handles.
type Row interface {
	TableName() string
	PrimaryKey() int64
}

// Predicate is a single column = value equality.
type Predicate map[string]interface{}

// Gateway is the narrow typed access layer over the relational store.
// All values travel as bound parameters.
type Gateway struct {
	db *gorm.DB
}

// NewGateway creates a new store gateway
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// DB returns the underlying handle bound to ctx.
func (g *Gateway) DB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

// Transaction runs fn with a gateway bound to a single transaction.
// A returned error rolls everything back.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *Gateway) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gateway{db: tx})
	})
}

// Select reads columns of every row of T's table.
func Select[T Row](ctx context.Context, g *Gateway, columns []string) ([]T, error) {
	table := tableOf[T]()
	if err := checkColumns("select", columns); err != nil {
		return nil, err
	}

	var rows []T
	if err := g.db.WithContext(ctx).Select(columns).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, translateError(err))
	}
	return rows, nil
}

// SelectWhere reads columns of the rows matching one equality predicate.
func SelectWhere[T Row](ctx context.Context, g *Gateway, columns []string, where Predicate) ([]T, error) {
	table := tableOf[T]()
	if err := checkColumns("select_where", columns); err != nil {
		return nil, err
	}
	column, value, err := where.single("select_where")
	if err != nil {
		return nil, err
	}

	var rows []T
	result := g.db.WithContext(ctx).
		Select(columns).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("select from %s where %s: %w", table, column, translateError(result.Error))
	}
	return rows, nil
}

// Insert writes row and fills in its generated id. The store must report
// exactly one inserted row.
func Insert[T Row](ctx context.Context, g *Gateway, row *T) error {
	table := tableOf[T]()

	result := g.db.WithContext(ctx).Create(row)
	if result.Error != nil {
		return fmt.Errorf("insert into %s: %w", table, translateError(result.Error))
	}
	if result.RowsAffected != 1 || (*row).PrimaryKey() == 0 {
		return apperr.Internal("insert", "expected one %s row with an id, got %d rows", table, result.RowsAffected)
	}
	return nil
}

// InsertIfAbsent writes row unless a row matching exists is already
// stored, and reports whether it wrote. A concurrent writer winning the
// race on the same key counts as "already existed"; the predicate column
// must carry a unique index for that to hold.
func InsertIfAbsent[T Row](ctx context.Context, g *Gateway, row *T, exists Predicate) (bool, error) {
	table := tableOf[T]()
	column, _, err := exists.single("insert_if_absent")
	if err != nil {
		return false, err
	}

	found, err := SelectWhere[T](ctx, g, []string{"id"}, exists)
	if err != nil {
		return false, err
	}
	if len(found) > 1 {
		return false, apperr.Internal("insert_if_absent", "expected at most one %s row for %s, got %d", table, column, len(found))
	}
	if len(found) == 1 {
		return false, nil
	}

	result := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: column}}, DoNothing: true}).
		Create(row)
	if result.Error != nil {
		err := translateError(result.Error)
		if errors.Is(err, ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("insert into %s: %w", table, err)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if result.RowsAffected != 1 || (*row).PrimaryKey() == 0 {
		return false, apperr.Internal("insert_if_absent", "expected one %s row with an id, got %d rows", table, result.RowsAffected)
	}
	return true, nil
}

func (p Predicate) single(op string) (string, interface{}, error) {
	if len(p) != 1 {
		return "", nil, apperr.Internal(op, "expected a predicate on exactly one column, got %d", len(p))
	}
	for column, value := range p {
		if !identifierPattern.MatchString(column) {
			return "", nil, apperr.Internal(op, "invalid column name %q", column)
		}
		return column, value, nil
	}
	return "", nil, nil
}

func checkColumns(op string, columns []string) error {
	if len(columns) == 0 {
		return apperr.Internal(op, "expected at least one column")
	}
	for _, c := range columns {
		if !identifierPattern.MatchString(c) {
			return apperr.Internal(op, "invalid column name %q", c)
		}
	}
	return nil
}

func tableOf[T Row]() string {
	var zero T
	return zero.TableName()
}

// translateError maps unique violations onto ErrConflict, keeping the cause.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s: %w", ErrConflict, pgErr.ConstraintName, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
