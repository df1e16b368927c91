package recipe_repo

import (
	"context"
	"errors"

	"yaminabe_backend/internal/model"
	"yaminabe_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
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
	id BIGSERIAL PRIMARY KEY,
	recipe_name TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	detail TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	steps TEXT NOT NULL DEFAULT '[]'
)`

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRecipeRepository(dbc *pgxpool.Pool) repository.RecipeRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn - транзакция из контекста, если она есть, иначе пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// EnsureSchema - создаёт таблицу рецептов, если её нет
func (r *repo) EnsureSchema(ctx context.Context) error {
	_, err := r.conn(ctx).Exec(ctx, schema)
	return err
}

// Create - сохраняет рецепт, шаги хранятся JSON-массивом.
// Возвращает ID созданной записи
func (r *repo) Create(ctx context.Context, recipe *model.Recipe) (int64, error) {
	steps, err := json.Marshal(nonNil(recipe.Steps))
	if err != nil {
		return 0, err
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colRecipeName, colSummary, colDetail, colDescription, colSteps).
		Values(recipe.RecipeName, recipe.Summary, recipe.Detail, recipe.Description, string(steps)).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// FindIDByName - ID рецепта по названию, repository.ErrNotFound если такого нет
func (r *repo) FindIDByName(ctx context.Context, name string) (int64, error) {
	query := sq.Select(colID).
		From(table).
		Where(sq.Eq{colRecipeName: name}).
		OrderBy(colID).
		Limit(1).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	return id, nil
}

// Random - случайный сохранённый рецепт для гачи
func (r *repo) Random(ctx context.Context) (*model.Recipe, error) {
	query := sq.Select(colID, colRecipeName, colSummary, colDetail, colDescription, colSteps).
		From(table).
		OrderBy("random()").
		Limit(1).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		recipe model.Recipe
		steps  string
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&recipe.ID, &recipe.RecipeName, &recipe.Summary, &recipe.Detail, &recipe.Description, &steps)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(steps), &recipe.Steps); err != nil {
		return nil, err
	}

	return &recipe, nil
}

func nonNil(steps []string) []string {
	if steps == nil {
		return []string{}
	}
	return steps
}
