package erpsim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
)

func newTestClient(baseURL string) *erpsim.Client {
	return erpsim.NewClient(config.OData{
		BaseURL:        baseURL,
		Username:       "user",
		Password:       "secret",
		TimeoutSeconds: 5,
	})
}

func TestClient_FetchView(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		opts     erpsim.FetchOptions
		validate func(t *testing.T, r *http.Request, records []erpsim.Record, err error)
	}{
		{
			name:   "Enveloppe OData v2 décodée",
			status: http.StatusOK,
			body:   `{"d":{"results":[{"MATERIAL_NUMBER":"F04","QUANTITY":10}]}}`,
			opts:   erpsim.FetchOptions{Top: 100},
			validate: func(t *testing.T, r *http.Request, records []erpsim.Record, err error) {
				assert.NoError(t, err)
				assert.Len(t, records, 1)
				assert.Equal(t, "F04", records[0].String("MATERIAL_NUMBER"))
				assert.Equal(t, 10.0, records[0].Float("QUANTITY"))

				assert.Equal(t, "100", r.URL.Query().Get("$top"))
				username, password, ok := r.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "user", username)
				assert.Equal(t, "secret", password)
			},
		},
		{
			name:   "Enveloppe OData v4 décodée",
			status: http.StatusOK,
			body:   `{"value":[{"MATERIAL_NUMBER":"F05"}]}`,
			validate: func(t *testing.T, r *http.Request, records []erpsim.Record, err error) {
				assert.NoError(t, err)
				assert.Len(t, records, 1)
				assert.Equal(t, "F05", records[0].String("MATERIAL_NUMBER"))
			},
		},
		{
			name:   "Filtres ordonnés et joints par and",
			status: http.StatusOK,
			body:   `{"value":[]}`,
			opts: erpsim.FetchOptions{Filters: map[string]string{
				"SALES_ORGANIZATION": "Market",
				"AREA":               "North",
			}},
			validate: func(t *testing.T, r *http.Request, records []erpsim.Record, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "AREA eq 'North' and SALES_ORGANIZATION eq 'Market'", r.URL.Query().Get("$filter"))
			},
		},
		{
			name:   "Statut non-200 remonte en erreur",
			status: http.StatusInternalServerError,
			body:   "kaputt",
			validate: func(t *testing.T, r *http.Request, records []erpsim.Record, err error) {
				assert.Error(t, err)
				assert.Nil(t, records)
			},
		},
		{
			name:   "Corps illisible remonte en erreur de décodage",
			status: http.StatusOK,
			body:   "pas du json",
			validate: func(t *testing.T, r *http.Request, records []erpsim.Record, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received *http.Request
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received = r.Clone(r.Context())
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			records, err := newTestClient(server.URL).FetchView(context.Background(), erpsim.ViewSales, tt.opts)
			tt.validate(t, received, records, err)
		})
	}
}

func TestClient_TestConnection(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "Flux joignable", status: http.StatusOK, body: `{"value":[]}`, wantErr: false},
		{name: "Flux en erreur", status: http.StatusUnauthorized, body: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newTestClient(server.URL).TestConnection(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
