package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/banachtech/volsurf/sabr"
)

// Store provides all functions to execute db queries and transactions
type Store interface {
	Querier
	SaveCalibration(ctx context.Context, arg SaveCalibrationParams) ([]SabrParameter, error)
	GetLatestCalibration(ctx context.Context, name string) ([]SabrParameter, error)
}

// SQLStore provides all functions to execute SQL queries and transactions
type SQLStore struct {
	*Queries
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &SQLStore{
		db:      db,
		Queries: New(db),
	}
}

// execTx executes a function within a database transaction
func (store *SQLStore) execTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

type SaveCalibrationParams struct {
	Name       string
	Date       string
	Forwards   []float64
	Parameters []sabr.ParameterSet
}

// SaveCalibration replaces every row of (name, date) with the given sets.
func (store *SQLStore) SaveCalibration(ctx context.Context, arg SaveCalibrationParams) ([]SabrParameter, error) {
	if len(arg.Forwards) != len(arg.Parameters) {
		return nil, fmt.Errorf("%d forwards for %d parameter sets", len(arg.Forwards), len(arg.Parameters))
	}
	var result []SabrParameter
	err := store.execTx(ctx, func(q *Queries) error {
		err := q.DeleteParams(ctx, DeleteParamsParams{Name: arg.Name, Date: arg.Date})
		if err != nil {
			return err
		}
		for i, p := range arg.Parameters {
			row, err := q.InsertParam(ctx, InsertParamParams{
				Name:     arg.Name,
				Date:     arg.Date,
				Maturity: p.Maturity,
				Forward:  arg.Forwards[i],
				Alpha:    p.Alpha,
				Beta:     p.Beta,
				Rho:      p.Rho,
				Nu:       p.Nu,
			})
			if err != nil {
				return err
			}
			result = append(result, row)
		}
		return nil
	})
	return result, err
}

func (store *SQLStore) GetLatestCalibration(ctx context.Context, name string) ([]SabrParameter, error) {
	var result []SabrParameter
	err := store.execTx(ctx, func(q *Queries) error {
		date, err := q.GetLatestParamDate(ctx, name)
		if err != nil {
			return err
		}
		result, err = q.GetParams(ctx, GetParamsParams{Name: name, Date: date})
		return err
	})
	return result, err
}

// ParameterSet converts a stored row back to the calibrated set.
func (p SabrParameter) ParameterSet() sabr.ParameterSet {
	return sabr.ParameterSet{Maturity: p.Maturity, Alpha: p.Alpha, Beta: p.Beta, Rho: p.Rho, Nu: p.Nu}
}
