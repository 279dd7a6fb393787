package router_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/deppfellow/phonebook/internal/handler"
	"github.com/deppfellow/phonebook/internal/middleware"
	"github.com/deppfellow/phonebook/internal/model"
	"github.com/deppfellow/phonebook/internal/router"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/deppfellow/phonebook/internal/service"
	"github.com/deppfellow/phonebook/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Code   string `json:"code"`
	Error  string `json:"error"`
	Status int    `json:"status"`
	Errors []struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"errors"`
}

type fixture struct {
	srv    *server.Server
	store  *testutil.PersonStore
	router *echo.Echo
}

func setupRouter(t *testing.T) *fixture {
	t.Helper()

	srv := testutil.NewTestServer(t)
	store := testutil.NewPersonStore()

	services := &service.Services{Person: service.NewPersonService(srv, store)}
	handlers := handler.NewHandlers(srv, services)

	return &fixture{
		srv:    srv,
		store:  store,
		router: router.NewRouter(srv, handlers),
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodePerson(t *testing.T, rec *httptest.ResponseRecorder) model.Person {
	t.Helper()

	var p model.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p), rec.Body.String())
	return p
}

func TestListPersons_Empty(t *testing.T) {
	f := setupRouter(t)

	rec := f.do(t, http.MethodGet, "/api/persons", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListPersons_InsertionOrder(t *testing.T) {
	f := setupRouter(t)
	seeded := f.store.Seed(
		model.CreatePersonPayload{Name: "Arto Hellas", Number: "040-123456"},
		model.CreatePersonPayload{Name: "Ada Lovelace", Number: "39-44-5323523"},
	)

	rec := f.do(t, http.MethodGet, "/api/persons", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var persons []model.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &persons))
	assert.Equal(t, seeded, persons)
}

func TestGetPerson(t *testing.T) {
	f := setupRouter(t)
	seeded := f.store.Seed(model.CreatePersonPayload{Name: "Arto Hellas", Number: "040-123456"})

	t.Run("found", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/persons/"+seeded[0].ID.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, seeded[0], decodePerson(t, rec))
	})

	t.Run("well-formed id that does not exist", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/persons/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "Person not found", body.Error)
		assert.Equal(t, "NOT_FOUND", body.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/persons/not-an-id", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "malformatted id", body.Error)
		assert.Equal(t, "MALFORMATTED_ID", body.Code)
	})
}

func TestCreatePerson(t *testing.T) {
	f := setupRouter(t)

	rec := f.do(t, http.MethodPost, "/api/persons", `{"name":"Ada","number":"123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	created := decodePerson(t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Ada", created.Name)
	assert.Equal(t, "123", created.Number)

	rec = f.do(t, http.MethodGet, "/api/persons/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodePerson(t, rec))
}

func TestCreatePerson_IgnoresClientID(t *testing.T) {
	f := setupRouter(t)
	clientID := uuid.NewString()

	rec := f.do(t, http.MethodPost, "/api/persons", `{"id":"`+clientID+`","name":"Ada","number":"123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, clientID, decodePerson(t, rec).ID.String())
}

func TestCreatePerson_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		missing []string
	}{
		{name: "missing name", body: `{"number":"123"}`, missing: []string{"name"}},
		{name: "missing number", body: `{"name":"Ada"}`, missing: []string{"number"}},
		{name: "empty name", body: `{"name":"","number":"123"}`, missing: []string{"name"}},
		{name: "empty object", body: `{}`, missing: []string{"name", "number"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupRouter(t)

			rec := f.do(t, http.MethodPost, "/api/persons", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			require.Len(t, body.Errors, len(tt.missing))
			for i, field := range tt.missing {
				assert.Equal(t, field, body.Errors[i].Field)
				assert.Equal(t, "is required", body.Errors[i].Error)
			}
			assert.Empty(t, f.store.Snapshot())
		})
	}
}

func TestCreatePerson_MalformedJSON(t *testing.T) {
	f := setupRouter(t)

	rec := f.do(t, http.MethodPost, "/api/persons", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.store.Snapshot())
}

func TestCreatePerson_DuplicateName(t *testing.T) {
	f := setupRouter(t)

	rec := f.do(t, http.MethodPost, "/api/persons", `{"name":"Ada","number":"123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/persons", `{"name":"Ada","number":"999"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, service.DuplicateNameMessage, body.Error)
	assert.Equal(t, "PERSON_ALREADY_EXISTS", body.Code)

	stored := f.store.Snapshot()
	require.Len(t, stored, 1)
	assert.Equal(t, "123", stored[0].Number)
}

func TestUpdatePerson(t *testing.T) {
	f := setupRouter(t)
	seeded := f.store.Seed(
		model.CreatePersonPayload{Name: "Arto Hellas", Number: "040-123456"},
		model.CreatePersonPayload{Name: "Ada Lovelace", Number: "39-44-5323523"},
	)
	target := "/api/persons/" + seeded[0].ID.String()

	t.Run("replaces name and number", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, target, `{"name":"Arto Hellas","number":"050-999"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		updated := decodePerson(t, rec)
		assert.Equal(t, seeded[0].ID, updated.ID)
		assert.Equal(t, "050-999", updated.Number)

		rec = f.do(t, http.MethodGet, target, "")
		assert.Equal(t, updated, decodePerson(t, rec))
	})

	t.Run("id in body is ignored", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, target, `{"id":"`+uuid.NewString()+`","name":"Arto Hellas","number":"1"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, seeded[0].ID, decodePerson(t, rec).ID)
	})

	t.Run("name taken by another person", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, target, `{"name":"Ada Lovelace","number":"1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, service.DuplicateNameMessage, decodeError(t, rec).Error)
	})

	t.Run("missing number", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, target, `{"name":"Arto Hellas"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/persons/"+uuid.NewString(), `{"name":"Nobody","number":"1"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/persons/123", `{"name":"Nobody","number":"1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "malformatted id", decodeError(t, rec).Error)
	})
}

func TestDeletePerson(t *testing.T) {
	f := setupRouter(t)
	seeded := f.store.Seed(model.CreatePersonPayload{Name: "Arto Hellas", Number: "040-123456"})
	target := "/api/persons/" + seeded[0].ID.String()

	rec := f.do(t, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = f.do(t, http.MethodGet, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/persons/xyz", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInfo(t *testing.T) {
	f := setupRouter(t)
	f.store.Seed(
		model.CreatePersonPayload{Name: "Arto Hellas", Number: "040-123456"},
		model.CreatePersonPayload{Name: "Ada Lovelace", Number: "39-44-5323523"},
	)

	rec := f.do(t, http.MethodGet, "/info", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Regexp(t,
		regexp.MustCompile(`^<p>PhoneBook has info for 2 people</p><p>\w{3} \w{3} \d{2} \d{4} \d{2}:\d{2}:\d{2} GMT[+-]\d{4} \(.+\)</p>$`),
		rec.Body.String(),
	)
}

func TestUnknownEndpoint(t *testing.T) {
	f := setupRouter(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/unknown"},
		{http.MethodPost, "/api/unknown"},
		{http.MethodPatch, "/api/persons"},
		{http.MethodGet, "/no-frontend-built"},
		{http.MethodPost, "/anything"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.target, "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "unknown endpoint", decodeError(t, rec).Error)
		})
	}
}

func TestStaticFrontend(t *testing.T) {
	f := setupRouter(t)
	root := f.srv.Config.Server.StaticDir

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<div id=\"root\"></div>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("console.log(1)"), 0o644))

	rec := f.do(t, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `<div id="root"></div>`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/some/client/route", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `<div id="root"></div>`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/../../etc/passwd", "")
	assert.Equal(t, `<div id="root"></div>`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	f := setupRouter(t)
	f.store.Err = errors.New("connection refused")

	rec := f.do(t, http.MethodGet, "/api/persons", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestStatus_WithoutDatabase(t *testing.T) {
	f := setupRouter(t)

	rec := f.do(t, http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Contains(t, body["checks"], "database")
}

func TestMetrics(t *testing.T) {
	f := setupRouter(t)
	f.do(t, http.MethodGet, "/api/persons", "")

	rec := f.do(t, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `phonebook_http_requests_total{method="GET",route="/api/persons",status="200"}`)
}

func TestRequestIDHeader(t *testing.T) {
	f := setupRouter(t)

	rec := f.do(t, http.MethodGet, "/api/persons", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/persons", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestStaticFrontend_BuildAssetsUnderStatic(t *testing.T) {
	f := setupRouter(t)
	root := f.srv.Config.Server.StaticDir

	require.NoError(t, os.MkdirAll(filepath.Join(root, "static", "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<div id=\"root\"></div>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "static", "js", "main.js"), []byte("render()"), 0o644))

	rec := f.do(t, http.MethodGet, "/static/js/main.js", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "render()", rec.Body.String())
}

func TestCreatePerson_LongValuesRoundTrip(t *testing.T) {
	f := setupRouter(t)
	name := strings.Repeat("n", 300)
	number := strings.Repeat("1", 100)

	rec := f.do(t, http.MethodPost, "/api/persons", `{"name":"`+name+`","number":"`+number+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodePerson(t, rec)

	rec = f.do(t, http.MethodGet, "/api/persons/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodePerson(t, rec)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, number, got.Number)
}

func TestDocs(t *testing.T) {
	f := setupRouter(t)
	dir := f.srv.Config.Server.DocsDir

	t.Run("missing files", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/docs/openapi.json", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = f.do(t, http.MethodGet, "/docs", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.html"), []byte(`<script data-url="/docs/openapi.json"></script>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.json"), []byte(`{"openapi":"3.0.3"}`), 0o644))

	t.Run("ui", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/docs", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.Contains(t, rec.Body.String(), `data-url="/docs/openapi.json"`)
	})

	t.Run("document", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/docs/openapi.json", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"openapi":"3.0.3"}`, rec.Body.String())
	})
}

func TestDocsAssetsMatchRoutes(t *testing.T) {
	html, err := os.ReadFile(filepath.Join("..", "..", "static", "openapi.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `data-url="/docs/openapi.json"`)

	raw, err := os.ReadFile(filepath.Join("..", "..", "static", "openapi.json"))
	require.NoError(t, err)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc.Paths, "/api/persons")
	assert.Contains(t, doc.Paths, "/api/persons/{id}")
}
