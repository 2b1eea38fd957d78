package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/banachtech/volsurf/data"
	db "github.com/banachtech/volsurf/db/sqlc"
	"github.com/banachtech/volsurf/sabr"
	"github.com/spf13/cobra"
)

func newCalibrateCmd() *cobra.Command {
	var (
		payload string
		out     string
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "calibrate a SABR surface from a quote file",
		Long:  `calibrate reads a JSON or YAML surface payload, fits SABR per maturity and writes the parameters`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if save && cfg.Database.Source == "" {
				return errors.New("--save needs database.source")
			}

			p, err := data.LoadPayload(payload)
			if err != nil {
				return fmt.Errorf("payload %s: %w", payload, err)
			}
			m, err := p.Parse()
			if err != nil {
				return err
			}
			opts, err := cfg.Calibration.Options()
			if err != nil {
				return err
			}
			opts.Logger = logger

			bar := data.ProgressBar(len(p.Maturities))
			s, err := m.Sabr(
				sabr.WithOptions(opts),
				sabr.WithParallel(cfg.Calibration.Parallel),
				sabr.WithProgress(func() { _ = bar.Add(1) }),
				sabr.WithLogger(logger),
			)
			_ = bar.Finish()
			if err != nil {
				return err
			}

			c := data.NewCalibration(p.Name, s)
			if out == "" {
				fmt.Println(c)
			} else if err := data.CreateJSON(c, out); err != nil {
				return err
			}

			if !save {
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			conn, err := db.Connect(ctx, cfg.Database.Driver, cfg.Database.Source)
			if err != nil {
				return err
			}
			defer conn.Close()

			rows, err := db.NewStore(conn).SaveCalibration(ctx, db.SaveCalibrationParams{
				Name:       c.Name,
				Date:       c.ValuationDate,
				Forwards:   c.Forwards,
				Parameters: c.Parameters,
			})
			if err != nil {
				return err
			}
			logger.Info("calibration saved", "name", c.Name, "date", c.ValuationDate, "rows", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&payload, "payload", "p", "", "surface payload (.json, .yaml)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write parameters as JSON instead of printing")
	cmd.Flags().BoolVar(&save, "save", false, "store the parameters in the database")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}
