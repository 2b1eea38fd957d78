package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	mockdb "github.com/banachtech/volsurf/db/mock"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestVolatilityAPI(t *testing.T) {
	queries := []gin.H{
		{"expiry": "2026-01-01", "strike": 100},
		{"expiry": "2026-07-02", "strike": 95},
	}

	testCases := []struct {
		name          string
		body          gin.H
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "IMPLIED",
			body: gin.H{"surface": surfaceBody(), "variant": "implied", "queries": queries},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				var rsp volatilityResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &rsp))
				require.Equal(t, "SPX", rsp.Name)
				require.Len(t, rsp.Values, 2)
				require.InDelta(t, 0.21, rsp.Values[0].Vol, 1e-12)
			},
		},
		{
			name: "SABR",
			body: gin.H{"surface": surfaceBody(), "variant": "sabr", "queries": queries},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				var rsp volatilityResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &rsp))
				require.Len(t, rsp.Values, 2)
				require.InDelta(t, 0.21, rsp.Values[0].Vol, 5e-3)
			},
		},
		{
			name: "LOCAL",
			body: gin.H{"surface": surfaceBody(), "variant": "local", "queries": queries},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				var rsp volatilityResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &rsp))
				require.Len(t, rsp.Values, 2)
				require.Greater(t, rsp.Values[0].Vol, 0.0)
				require.GreaterOrEqual(t, rsp.Values[1].Vol, 0.0)
			},
		},
		{
			name: "BAD_VARIANT",
			body: gin.H{"surface": surfaceBody(), "variant": "heston", "queries": queries},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "OUTSIDE_DOMAIN",
			body: gin.H{"surface": surfaceBody(), "variant": "sabr", "queries": []gin.H{{"expiry": "2030-01-01", "strike": 100}}},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "BAD_EXPIRY",
			body: gin.H{"surface": surfaceBody(), "queries": []gin.H{{"expiry": "01/01/2026", "strike": 100}}},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "NO_QUERIES",
			body: gin.H{"surface": surfaceBody(), "queries": []gin.H{}},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := newTestServer(t, mockdb.NewMockStore(ctrl))
			recorder := httptest.NewRecorder()

			data, err := json.Marshal(tc.body)
			require.NoError(t, err)

			request, err := http.NewRequest(http.MethodPost, "/v1/volatility", bytes.NewReader(data))
			require.NoError(t, err)

			server.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}
