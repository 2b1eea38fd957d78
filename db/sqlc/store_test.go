package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/banachtech/volsurf/sabr"
	"github.com/banachtech/volsurf/util"
	"github.com/stretchr/testify/require"
)

func randomCalibration(name, date string, n int) SaveCalibrationParams {
	arg := SaveCalibrationParams{Name: name, Date: date}
	for i := 0; i < n; i++ {
		arg.Forwards = append(arg.Forwards, util.RandomFloat(90, 110))
		arg.Parameters = append(arg.Parameters, sabr.ParameterSet{
			Maturity: float64(i+1) / 2,
			Alpha:    util.RandomFloat(0.5, 3),
			Beta:     0.5,
			Rho:      util.RandomFloat(-0.9, 0.9),
			Nu:       util.RandomFloat(0.1, 1),
		})
	}
	return arg
}

func TestInsertParam(t *testing.T) {
	requireDB(t)

	arg := InsertParamParams{
		Name:     util.RandomSurface(),
		Date:     time.Now().Format(util.Layout),
		Maturity: 1,
		Forward:  util.RandomFloat(90, 110),
		Alpha:    util.RandomFloat(0.5, 3),
		Beta:     0.5,
		Rho:      util.RandomFloat(-0.9, 0.9),
		Nu:       util.RandomFloat(0.1, 1),
	}
	result, err := testQueries.InsertParam(context.Background(), arg)
	require.NoError(t, err)
	require.NotZero(t, result.ID)
	require.Equal(t, arg.Name, result.Name)
	require.Equal(t, arg.Date, result.Date)
	require.Equal(t, arg.Alpha, result.Alpha)
	require.Equal(t, arg.Rho, result.Rho)
	require.Equal(t, arg.Nu, result.Nu)
	require.NotZero(t, result.CreatedAt)
}

func TestSaveCalibrationReplaces(t *testing.T) {
	requireDB(t)
	store := NewStore(testDB)
	ctx := context.Background()
	name := util.RandomSurface()

	first := randomCalibration(name, "2025-01-01", 3)
	_, err := store.SaveCalibration(ctx, first)
	require.NoError(t, err)

	second := randomCalibration(name, "2025-01-01", 2)
	rows, err := store.SaveCalibration(ctx, second)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got, err := store.GetParams(ctx, GetParamsParams{Name: name, Date: "2025-01-01"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i, row := range got {
		require.Equal(t, second.Parameters[i], row.ParameterSet())
		require.Equal(t, second.Forwards[i], row.Forward)
	}
}

func TestGetLatestCalibration(t *testing.T) {
	requireDB(t)
	store := NewStore(testDB)
	ctx := context.Background()
	name := util.RandomSurface()

	_, err := store.GetLatestCalibration(ctx, name)
	require.ErrorIs(t, err, sql.ErrNoRows)

	// concurrent saves of distinct dates
	dates := []string{"2025-01-02", "2025-01-03", "2025-01-06"}
	errs := make(chan error)
	for _, d := range dates {
		go func(d string) {
			_, err := store.SaveCalibration(ctx, randomCalibration(name, d, 3))
			errs <- err
		}(d)
	}
	for range dates {
		require.NoError(t, <-errs)
	}

	latest, err := store.GetLatestCalibration(ctx, name)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	for _, row := range latest {
		require.Equal(t, "2025-01-06", row.Date)
	}

	names, err := store.ListSurfaces(ctx)
	require.NoError(t, err)
	require.Contains(t, names, name)
}

func TestSaveCalibrationMismatch(t *testing.T) {
	store := &SQLStore{}
	arg := randomCalibration("X", "2025-01-01", 2)
	arg.Forwards = arg.Forwards[:1]
	_, err := store.SaveCalibration(context.Background(), arg)
	require.Error(t, err)
}
