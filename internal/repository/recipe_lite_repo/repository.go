package recipe_lite_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"yaminabe_backend/internal/model"
	"yaminabe_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite"
)

const (
	table          = "recipes"
	colID          = "id"
	colRecipeName  = "recipe_name"
	colSummary     = "summary"
	colDetail      = "detail"
	colDescription = "description"
	colSteps       = "steps"
)

const schema = `CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_name TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	detail TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	steps TEXT NOT NULL DEFAULT '[]'
)`

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type repo struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
}

// Open - открывает файл SQLite. ":memory:" даёт базу в памяти
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Один писатель: иначе каждое соединение ":memory:" видит свою базу
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

func NewRecipeRepository(db *sql.DB) repository.RecipeRepository {
	return &repo{
		db:     db,
		getter: trmsql.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmsql.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.db)
}

// EnsureSchema - создаёт таблицу рецептов, если её нет
func (r *repo) EnsureSchema(ctx context.Context) error {
	_, err := r.conn(ctx).ExecContext(ctx, schema)
	return err
}

// Create - сохраняет рецепт и возвращает его ID
func (r *repo) Create(ctx context.Context, recipe *model.Recipe) (int64, error) {
	steps := recipe.Steps
	if steps == nil {
		steps = []string{}
	}
	rawSteps, err := json.Marshal(steps)
	if err != nil {
		return 0, err
	}

	query := sq.Insert(table).
		Columns(colRecipeName, colSummary, colDetail, colDescription, colSteps).
		Values(recipe.RecipeName, recipe.Summary, recipe.Detail, recipe.Description, string(rawSteps))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.conn(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// FindIDByName - ID рецепта по названию, repository.ErrNotFound если такого нет
func (r *repo) FindIDByName(ctx context.Context, name string) (int64, error) {
	query := sq.Select(colID).
		From(table).
		Where(sq.Eq{colRecipeName: name}).
		OrderBy(colID).
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.conn(ctx).QueryRowContext(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	return id, nil
}

// Random - случайный сохранённый рецепт
func (r *repo) Random(ctx context.Context) (*model.Recipe, error) {
	query := sq.Select(colID, colRecipeName, colSummary, colDetail, colDescription, colSteps).
		From(table).
		OrderBy("random()").
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		recipe model.Recipe
		steps  string
	)
	err = r.conn(ctx).QueryRowContext(ctx, sqlStr, args...).
		Scan(&recipe.ID, &recipe.RecipeName, &recipe.Summary, &recipe.Detail, &recipe.Description, &steps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(steps), &recipe.Steps); err != nil {
		return nil, err
	}

	return &recipe, nil
}
