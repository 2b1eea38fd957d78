package api

import (
	"errors"
	"net/http"

	"github.com/banachtech/volsurf/data"
	db "github.com/banachtech/volsurf/db/sqlc"
	"github.com/banachtech/volsurf/sabr"
	"github.com/gin-gonic/gin"
)

var errNoStore = errors.New("parameter store is not configured")

type calibrateRequest struct {
	data.SurfacePayload
	Save bool `json:"save"`
}

type calibrateResponse struct {
	data.Calibration
	Saved bool `json:"saved"`
}

func (server *Server) sabrOptions() ([]sabr.SurfaceOption, error) {
	opts, err := server.config.Calibration.Options()
	if err != nil {
		return nil, err
	}
	opts.Logger = server.logger
	return []sabr.SurfaceOption{
		sabr.WithOptions(opts),
		sabr.WithParallel(server.config.Calibration.Parallel),
		sabr.WithLogger(server.logger),
	}, nil
}

func (server *Server) calibrate(c *gin.Context) {
	var req calibrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if req.Save && server.store == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse(errNoStore))
		return
	}

	m, err := req.Parse()
	if err != nil {
		server.abort(c, err)
		return
	}
	opts, err := server.sabrOptions()
	if err != nil {
		server.abort(c, err)
		return
	}
	s, err := m.Sabr(opts...)
	if err != nil {
		server.abort(c, err)
		return
	}

	rsp := calibrateResponse{Calibration: data.NewCalibration(req.Name, s)}
	if req.Save {
		_, err := server.store.SaveCalibration(c, db.SaveCalibrationParams{
			Name:       rsp.Name,
			Date:       rsp.ValuationDate,
			Forwards:   rsp.Forwards,
			Parameters: rsp.Parameters,
		})
		if err != nil {
			server.abort(c, err)
			return
		}
		rsp.Saved = true
	}
	c.JSON(http.StatusOK, rsp)
}

type latestRequest struct {
	Name string `uri:"name" binding:"required,alphanum"`
}

type latestResponse struct {
	Name       string              `json:"name"`
	Date       string              `json:"date"`
	Forwards   []float64           `json:"forwards"`
	Parameters []sabr.ParameterSet `json:"parameters"`
}

func (server *Server) latestParameters(c *gin.Context) {
	var req latestRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if server.store == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse(errNoStore))
		return
	}

	rows, err := server.store.GetLatestCalibration(c, req.Name)
	if err != nil {
		server.abort(c, err)
		return
	}
	rsp := latestResponse{Name: req.Name, Forwards: []float64{}, Parameters: []sabr.ParameterSet{}}
	for _, row := range rows {
		rsp.Date = row.Date
		rsp.Forwards = append(rsp.Forwards, row.Forward)
		rsp.Parameters = append(rsp.Parameters, row.ParameterSet())
	}
	c.JSON(http.StatusOK, rsp)
}

func (server *Server) listSurfaces(c *gin.Context) {
	if server.store == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse(errNoStore))
		return
	}
	names, err := server.store.ListSurfaces(c)
	if err != nil {
		server.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"surfaces": names})
}
