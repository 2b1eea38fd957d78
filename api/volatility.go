package api

import (
	"net/http"
	"time"

	"github.com/banachtech/volsurf/data"
	"github.com/banachtech/volsurf/surface"
	"github.com/banachtech/volsurf/util"
	"github.com/gin-gonic/gin"
)

type volQuery struct {
	Expiry string  `json:"expiry" binding:"required"`
	Strike float64 `json:"strike" binding:"required,gt=0"`
}

type volatilityRequest struct {
	Surface data.SurfacePayload `json:"surface" binding:"required"`
	Variant string              `json:"variant"`
	Queries []volQuery          `json:"queries" binding:"required,min=1,dive"`
}

type volPoint struct {
	Expiry string  `json:"expiry"`
	Strike float64 `json:"strike"`
	Vol    float64 `json:"vol"`
}

type volatilityResponse struct {
	Name    string     `json:"name"`
	Variant string     `json:"variant"`
	Values  []volPoint `json:"values"`
}

// volatility builds the requested surface from the payload and evaluates it
// at every query. Strikes are absolute; moneyness surfaces divide by spot.
func (server *Server) volatility(c *gin.Context) {
	var req volatilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	variant, err := data.ParseVariant(req.Variant)
	if err != nil {
		server.abort(c, err)
		return
	}

	s, err := server.build(req.Surface, variant)
	if err != nil {
		server.abort(c, err)
		return
	}

	rsp := volatilityResponse{Name: req.Surface.Name, Variant: variant.String(), Values: make([]volPoint, 0, len(req.Queries))}
	for _, q := range req.Queries {
		expiry, err := time.Parse(util.Layout, q.Expiry)
		if err != nil {
			server.abort(c, surface.Errorf(surface.ErrValidation, "api.volatility", "expiry %q: %v", q.Expiry, err))
			return
		}
		v, err := s.GetValueWithSpot(expiry, q.Strike, req.Surface.Spot)
		if err != nil {
			server.abort(c, err)
			return
		}
		rsp.Values = append(rsp.Values, volPoint{Expiry: q.Expiry, Strike: q.Strike, Vol: v})
	}
	c.JSON(http.StatusOK, rsp)
}

func (server *Server) build(p data.SurfacePayload, variant surface.Variant) (surface.InterpolatedSurface, error) {
	sabrOpts, err := server.sabrOptions()
	if err != nil {
		return nil, err
	}
	lvOpts, err := server.config.LocalVol.Options()
	if err != nil {
		return nil, err
	}
	return data.Build(p, variant, data.BuildOptions{
		Logger:   server.logger,
		Sabr:     sabrOpts,
		LocalVol: lvOpts,
	})
}
