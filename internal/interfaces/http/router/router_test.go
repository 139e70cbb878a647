package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	geoapp "github.com/orderdesk/backend/internal/application/geo"
	shippingapp "github.com/orderdesk/backend/internal/application/shipping"
	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipping"
	"github.com/orderdesk/backend/internal/infrastructure/cache"
	"github.com/orderdesk/backend/internal/infrastructure/persistence"
	"github.com/orderdesk/backend/internal/interfaces/http/handler"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
	"github.com/orderdesk/backend/internal/interfaces/http/router"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	engine  *gin.Engine
	db      *gorm.DB
	storeID uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlitedriver.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&geo.Country{}, &geo.State{},
		&shipping.Zone{}, &shipping.RegionAssignment{},
	))

	zoneRepo := persistence.NewGormZoneRepository(db)
	assignmentRepo := persistence.NewGormRegionAssignmentRepository(db)
	geoRepo := persistence.NewGormGeoRepository(db)

	resolutionCache := cache.NewInMemoryResolutionCache()
	t.Cleanup(func() { _ = resolutionCache.Close() })

	zoneService := shippingapp.NewZoneService(zoneRepo, resolutionCache)
	assignmentService := shippingapp.NewAssignmentService(zoneRepo, assignmentRepo, geoRepo, resolutionCache)
	directoryService := geoapp.NewDirectoryService(geoRepo)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register("/shipping", handler.NewShippingZoneHandler(zoneService)).
		Register("/shipping", handler.NewAssignmentHandler(assignmentService)).
		Register("/geo", handler.NewGeoHandler(directoryService)).
		Register("/system", handler.NewSystemHandler())
	r.Setup()

	return &testServer{
		engine:  engine,
		db:      db,
		storeID: uuid.New(),
	}
}

func (s *testServer) request(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Store-ID", s.storeID.String())

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var envelope apiEnvelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

func (s *testServer) seedGeo(t *testing.T) (geo.Country, geo.State, geo.State) {
	t.Helper()
	us := geo.Country{ID: uuid.New(), Name: "United States", Code: "US"}
	require.NoError(t, s.db.Create(&us).Error)
	california := geo.State{ID: uuid.New(), Name: "California", Code: "CA", CountryID: us.ID}
	require.NoError(t, s.db.Create(&california).Error)
	texas := geo.State{ID: uuid.New(), Name: "Texas", Code: "TX", CountryID: us.ID}
	require.NoError(t, s.db.Create(&texas).Error)
	return us, california, texas
}

func (s *testServer) createZone(t *testing.T, name string) uuid.UUID {
	t.Helper()
	w, envelope := s.request(t, http.MethodPost, "/api/v1/shipping/zones", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)

	var zone shippingapp.ZoneResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &zone))
	return zone.ID
}

func TestRouter_ZoneLifecycle(t *testing.T) {
	s := newTestServer(t)

	zoneID := s.createZone(t, "Domestic")

	t.Run("duplicate name is rejected", func(t *testing.T) {
		w, envelope := s.request(t, http.MethodPost, "/api/v1/shipping/zones", gin.H{"name": "Domestic"})
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "ERR_ALREADY_EXISTS", envelope.Error.Code)
	})

	t.Run("lists zones", func(t *testing.T) {
		s.createZone(t, "Alaska")

		w, envelope := s.request(t, http.MethodGet, "/api/v1/shipping/zones", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page shared.Paginated[shippingapp.ZoneResponse]
		require.NoError(t, json.Unmarshal(envelope.Data, &page))
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Alaska", page.Items[0].Name)
		assert.Equal(t, "Domestic", page.Items[1].Name)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("paginates zones", func(t *testing.T) {
		w, envelope := s.request(t, http.MethodGet, "/api/v1/shipping/zones?page=2&page_size=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page shared.Paginated[shippingapp.ZoneResponse]
		require.NoError(t, json.Unmarshal(envelope.Data, &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Domestic", page.Items[0].Name)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("renames a zone", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s", zoneID)
		w, envelope := s.request(t, http.MethodPut, path, gin.H{"name": "Continental US"})
		require.Equal(t, http.StatusOK, w.Code)

		var zone shippingapp.ZoneResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &zone))
		assert.Equal(t, "Continental US", zone.Name)
	})

	t.Run("deletes a zone", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s", zoneID)
		w, _ := s.request(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = s.request(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed zone ID is a bad request", func(t *testing.T) {
		w, _ := s.request(t, http.MethodGet, "/api/v1/shipping/zones/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouter_AssignmentsAndResolution(t *testing.T) {
	s := newTestServer(t)
	us, california, texas := s.seedGeo(t)

	zoneA := s.createZone(t, "Zone A")
	zoneB := s.createZone(t, "Zone B")

	t.Run("assigns a state rule", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s/assignments/states", zoneB)
		w, envelope := s.request(t, http.MethodPost, path, gin.H{"state_id": california.ID})
		require.Equal(t, http.StatusCreated, w.Code)

		var result shippingapp.AssignStateResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		require.NotNil(t, result.Assignment)
		assert.Equal(t, zoneB, result.Assignment.ZoneID)
	})

	t.Run("assigns a country", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s/assignments/countries", zoneA)
		w, envelope := s.request(t, http.MethodPost, path, gin.H{"country_ids": []uuid.UUID{us.ID}})
		require.Equal(t, http.StatusOK, w.Code)

		var result shippingapp.AssignCountriesResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		assert.Equal(t, 1, result.AssignedCount)
	})

	t.Run("state assignment defers to the country rule", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s/assignments/states", zoneB)
		w, envelope := s.request(t, http.MethodPost, path, gin.H{"state_id": texas.ID})
		require.Equal(t, http.StatusOK, w.Code)

		var result shippingapp.AssignStateResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		assert.True(t, result.Deferred)
		assert.Nil(t, result.Assignment)
	})

	t.Run("assigns a zip range", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s/assignments/zip-ranges", zoneB)
		w, _ := s.request(t, http.MethodPost, path, gin.H{
			"state_id":     texas.ID,
			"zip_code_min": 75000,
			"zip_code_max": 75499,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("overlapping zip range is a conflict", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s/assignments/zip-ranges", zoneA)
		w, envelope := s.request(t, http.MethodPost, path, gin.H{
			"state_id":     texas.ID,
			"zip_code_min": 75400,
			"zip_code_max": 75600,
		})
		require.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "ERR_ZIP_RANGE_OVERLAP", envelope.Error.Code)

		var result shippingapp.AssignZipRangeResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		assert.Len(t, result.ConflictIDs, 1)
	})

	t.Run("matrix reports rule sources", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/assignments/matrix?country_id=%s", us.ID)
		w, envelope := s.request(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var matrix shippingapp.MatrixResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &matrix))
		require.NotNil(t, matrix.CountryZoneID)
		assert.Equal(t, zoneA, *matrix.CountryZoneID)

		sources := make(map[string]string, len(matrix.Rows))
		for _, row := range matrix.Rows {
			sources[row.StateName] = row.Source
		}
		assert.Equal(t, "state", sources["California"])
		assert.Equal(t, "country", sources["Texas"])
	})

	t.Run("resolves by precedence", func(t *testing.T) {
		// Zip rule beats the country rule
		path := fmt.Sprintf("/api/v1/shipping/resolve?country_id=%s&state_id=%s&zip_code=75100", us.ID, texas.ID)
		w, envelope := s.request(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result shippingapp.ResolveResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		require.True(t, result.Assigned)
		require.NotNil(t, result.ZoneID)
		assert.Equal(t, zoneB, *result.ZoneID)

		// Outside the range the country rule applies
		path = fmt.Sprintf("/api/v1/shipping/resolve?country_id=%s&state_id=%s&zip_code=79999", us.ID, texas.ID)
		w, envelope = s.request(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		require.True(t, result.Assigned)
		assert.Equal(t, zoneA, *result.ZoneID)
	})

	t.Run("deferral drops an existing state rule", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s/assignments/states", zoneB)
		w, envelope := s.request(t, http.MethodPost, path, gin.H{"state_id": california.ID})
		require.Equal(t, http.StatusOK, w.Code)

		var result shippingapp.AssignStateResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		assert.True(t, result.Deferred)

		// California now inherits the country-wide rule
		resolvePath := fmt.Sprintf("/api/v1/shipping/resolve?country_id=%s&state_id=%s", us.ID, california.ID)
		w, envelope = s.request(t, http.MethodGet, resolvePath, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resolved shippingapp.ResolveResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &resolved))
		require.True(t, resolved.Assigned)
		assert.Equal(t, zoneA, *resolved.ZoneID)
	})

	t.Run("unknown country resolves as unassigned", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/shipping/resolve?country_id=%s", uuid.New())
		w, envelope := s.request(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var result shippingapp.ResolveResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		assert.False(t, result.Assigned)
		assert.Nil(t, result.ZoneID)
	})

	t.Run("lists the geo catalog", func(t *testing.T) {
		w, envelope := s.request(t, http.MethodGet, "/api/v1/geo/countries", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var countries []geoapp.CountryResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &countries))
		require.Len(t, countries, 1)

		path := fmt.Sprintf("/api/v1/geo/countries/%s/states", us.ID)
		w, envelope = s.request(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var states []geoapp.StateResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &states))
		require.Len(t, states, 2)
		assert.Equal(t, "California", states[0].Name)
	})
}

func TestRouter_StoreIsolation(t *testing.T) {
	s := newTestServer(t)
	s.createZone(t, "Domestic")

	// A different store sees an empty zone list
	other := &testServer{engine: s.engine, db: s.db, storeID: uuid.New()}
	w, envelope := other.request(t, http.MethodGet, "/api/v1/shipping/zones", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page shared.Paginated[shippingapp.ZoneResponse]
	require.NoError(t, json.Unmarshal(envelope.Data, &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)
}

func TestRouter_PartialBatchInvalidatesCache(t *testing.T) {
	s := newTestServer(t)
	us, _, _ := s.seedGeo(t)

	zoneA := s.createZone(t, "Zone A")
	zoneB := s.createZone(t, "Zone B")

	assign := func(zoneID uuid.UUID, countryIDs []uuid.UUID) *httptest.ResponseRecorder {
		path := fmt.Sprintf("/api/v1/shipping/zones/%s/assignments/countries", zoneID)
		w, _ := s.request(t, http.MethodPost, path, gin.H{"country_ids": countryIDs})
		return w
	}
	resolve := func() shippingapp.ResolveResponse {
		path := fmt.Sprintf("/api/v1/shipping/resolve?country_id=%s", us.ID)
		w, envelope := s.request(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var result shippingapp.ResolveResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &result))
		return result
	}

	w := assign(zoneA, []uuid.UUID{us.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// Prime the cache
	result := resolve()
	require.True(t, result.Assigned)
	require.Equal(t, zoneA, *result.ZoneID)

	// The batch fails on the unknown country after the US rule already moved
	w = assign(zoneB, []uuid.UUID{us.ID, uuid.New()})
	require.Equal(t, http.StatusNotFound, w.Code)

	result = resolve()
	require.True(t, result.Assigned)
	assert.Equal(t, zoneB, *result.ZoneID)
}

func TestRouter_SystemPing(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.request(t, http.MethodGet, "/api/v1/system/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
