package repositorydao

import (
	"context"
	"sort"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-dao-cache/dao"
)

// Repository is the part of repository.Repository[T] the adapter uses.
type Repository[T any] interface {
	GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (T, error)
	Create(ctx context.Context, record T, criteria ...repository.InsertCriteria) (T, error)
	Update(ctx context.Context, record T, criteria ...repository.UpdateCriteria) (T, error)
	Delete(ctx context.Context, record T) error
	Count(ctx context.Context, criteria ...repository.SelectCriteria) (int, error)
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]T, int, error)
}

var _ Repository[any] = repository.Repository[any](nil)

// Store adapts a Repository[T] to dao.RecordStore.
type Store[T any] struct {
	repo   Repository[T]
	mapper Mapper[T]
}

var _ dao.RecordStore = (*Store[any])(nil)

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithMapper replaces the default MsgpackMapper.
func WithMapper[T any](m Mapper[T]) Option[T] {
	return func(s *Store[T]) {
		if m != nil {
			s.mapper = m
		}
	}
}

// New adapts repo, mapping models with MsgpackMapper unless WithMapper is given.
func New[T any](repo Repository[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{repo: repo, mapper: MsgpackMapper[T]{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create maps fields to a model, creates it and returns the id the repository assigned.
func (s *Store[T]) Create(ctx context.Context, fields dao.Record) (string, error) {
	model, err := s.mapper.FromRecord(fields)
	if err != nil {
		return "", err
	}
	created, err := s.repo.Create(ctx, model)
	if err != nil {
		return "", err
	}
	record, err := s.mapper.ToRecord(created)
	if err != nil {
		return "", err
	}
	return record.ID(), nil
}

// Read loads the model by id and maps it to a record.
func (s *Store[T]) Read(ctx context.Context, id string) (dao.Record, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToRecord(model)
}

// Update loads the model, overwrites the given fields and saves it back.
func (s *Store[T]) Update(ctx context.Context, id string, fields dao.Record) error {
	current, err := s.Read(ctx, id)
	if err != nil {
		return err
	}
	merged := dao.Merge(current, fields)
	merged[dao.IDField] = current[dao.IDField]

	model, err := s.mapper.FromRecord(merged)
	if err != nil {
		return err
	}
	_, err = s.repo.Update(ctx, model)
	return err
}

// Delete loads the model by id and deletes it.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, model)
}

// CountBy counts models matching criteria.Where. Ordering and paging are ignored.
func (s *Store[T]) CountBy(ctx context.Context, criteria dao.Criteria) (int, error) {
	return s.repo.Count(ctx, WhereCriteria(criteria.Where)...)
}

// ListBy lists models matching criteria and maps each to a record.
func (s *Store[T]) ListBy(ctx context.Context, criteria dao.Criteria) ([]dao.Record, error) {
	models, _, err := s.repo.List(ctx, SelectCriteria(criteria)...)
	if err != nil {
		return nil, err
	}
	out := make([]dao.Record, 0, len(models))
	for _, m := range models {
		r, err := s.mapper.ToRecord(m)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// SelectCriteria translates c into bun select criteria: equality filters in
// field order, then ordering, offset and limit.
func SelectCriteria(c dao.Criteria) []repository.SelectCriteria {
	out := WhereCriteria(c.Where)
	for _, o := range c.OrderBy {
		field, dir := o.Field, o.Direction
		if dir != dao.Desc {
			dir = dao.Asc
		}
		out = append(out, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("? "+string(dir), bun.Ident(field))
		})
	}
	if c.Offset > 0 {
		offset := c.Offset
		out = append(out, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Offset(offset)
		})
	}
	if c.Limit > 0 {
		limit := c.Limit
		out = append(out, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Limit(limit)
		})
	}
	return out
}

// WhereCriteria turns equality conditions into bun where clauses. A nil
// value matches NULL.
func WhereCriteria(where map[string]any) []repository.SelectCriteria {
	fields := make([]string, 0, len(where))
	for f := range where {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]repository.SelectCriteria, 0, len(fields))
	for _, f := range fields {
		field, value := f, where[f]
		if value == nil {
			out = append(out, func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("? IS NULL", bun.Ident(field))
			})
			continue
		}
		out = append(out, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("? = ?", bun.Ident(field), value)
		})
	}
	return out
}
