package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/venuescope/venuesync/pkg/service/fetch"
)

func TestFetch(t *testing.T) {
	t.Run("decodes a JSON array of records", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.Method).Equal(http.MethodGet)
			gt.Value(t, r.Header.Get("Accept")).Equal("application/json")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id_conference": "c1", "name": "ICSE", "topics": "SE"},
				{"id_conference": "c2", "name": "FSE"}
			]`))
		}))
		defer srv.Close()

		client := fetch.New()
		records, err := client.Fetch(context.Background(), srv.URL)
		gt.NoError(t, err).Required()

		gt.Array(t, records).Length(2)
		gt.Value(t, records[0]["name"]).Equal("ICSE")
		gt.Value(t, records[1]["id_conference"]).Equal("c2")
	})

	t.Run("empty array yields no records", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := fetch.New()
		records, err := client.Fetch(context.Background(), srv.URL)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(0)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := fetch.New()
		_, err := client.Fetch(context.Background(), srv.URL)
		gt.Error(t, err)
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not": "an array"}`))
		}))
		defer srv.Close()

		client := fetch.New()
		_, err := client.Fetch(context.Background(), srv.URL)
		gt.Error(t, err)
	})

	t.Run("custom user agent is sent", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := fetch.New(fetch.WithUserAgent("venuesync-test"))
		_, err := client.Fetch(context.Background(), srv.URL)
		gt.NoError(t, err).Required()
		gt.Value(t, gotUA).Equal("venuesync-test")
	})
}
