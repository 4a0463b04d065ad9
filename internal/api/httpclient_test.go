package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediminder/mediminder/internal/logging"
	"github.com/mediminder/mediminder/internal/models"
)

func fields(name string) models.MedicineFields {
	return models.MedicineFields{Name: name, Dosage: "200mg", Frequency: "daily", Type: models.TypeTablet, User: "u1"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second, logging.Nop())
}

func TestDecode_HTMLErrorPages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "404 html maps to endpoint not found",
			status:  http.StatusNotFound,
			body:    "<!DOCTYPE html><html><body>Cannot GET /api</body></html>",
			wantMsg: "server endpoint not found (404), please contact support",
		},
		{
			name:    "500 html maps to internal server error",
			status:  http.StatusInternalServerError,
			body:    "<html><body>oops</body></html>",
			wantMsg: "internal server error (500), please try again later",
		},
		{
			name:    "other html status maps to generic message",
			status:  http.StatusBadGateway,
			body:    "<!doctype html><html></html>",
			wantMsg: "server returned an invalid HTML response (502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.ListMedicines(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.NotContains(t, err.Error(), "<html", "raw markup must never leak")
		})
	}
}

func TestDecode_UnparseableBodyCarriesExcerpt(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is definitely not json and also not an html document at all"))
	})

	_, err := c.ListMedicines(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response format: this is definitely not json")
	assert.Contains(t, err.Error(), "...")
}

func TestDecode_ServerMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "message field", body: `{"message":"invalid credentials"}`, wantMsg: "invalid credentials"},
		{name: "error field", body: `{"error":"user exists"}`, wantMsg: "user exists"},
		{name: "no field falls back to status", body: `{}`, wantMsg: "request failed with status 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Login(context.Background(), "a@b.com", "pw")
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestLogin_SendsIdentifierInEmailField(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "auth calls must not carry a bearer token")
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"user":{"_id":"u1","username":"alice"},"token":"tok123"}`))
	})

	ar, err := c.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", got["email"])
	assert.Equal(t, "secret", got["password"])
	assert.Equal(t, "u1", ar.User.ID)
	assert.Equal(t, "tok123", ar.Token)
}

func TestRegister_PhoneOnlyPayload(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"user":{"id":"u2","username":"carol"},"token":"tok"}`))
	})

	ar, err := c.Register(context.Background(), "carol", "pw", "", "5551234567")
	require.NoError(t, err)

	assert.Equal(t, "carol", got["username"])
	assert.Equal(t, "carol", got["name"], "name mirrors username")
	assert.Equal(t, "5551234567", got["phone"])
	assert.NotContains(t, got, "email", "email must stay unset for phone contacts")
	assert.Equal(t, "u2", ar.User.ID, "id key must normalize")
}

func TestRequestPasswordReset(t *testing.T) {
	t.Run("success passes backend message through", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"check your inbox"}`))
		})

		msg, err := c.RequestPasswordReset(context.Background(), "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, "check your inbox", msg)
	})

	t.Run("404 html page is a soft success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("<!DOCTYPE html><html>Cannot POST</html>"))
		})

		msg, err := c.RequestPasswordReset(context.Background(), "nobody@b.com")
		require.NoError(t, err)
		assert.Equal(t, ResetSentMessage, msg)
	})

	t.Run("json 404 is a soft success too", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no such route"}`))
		})

		msg, err := c.RequestPasswordReset(context.Background(), "nobody@b.com")
		require.NoError(t, err)
		assert.Equal(t, ResetSentMessage, msg)
	})

	t.Run("other failures stay errors", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"mailer down"}`))
		})

		_, err := c.RequestPasswordReset(context.Background(), "a@b.com")
		require.Error(t, err)
		assert.Equal(t, "mailer down", err.Error())
	})
}

func TestListMedicines(t *testing.T) {
	t.Run("attaches bearer token", func(t *testing.T) {
		var gotAuth string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[{"_id":"m1","name":"Aspirin","dosage":"500mg","frequency":"daily","user":"u1"}]`))
		})
		c.SetToken("tok123")

		meds, err := c.ListMedicines(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok123", gotAuth)
		require.Len(t, meds, 1)
		assert.Equal(t, "m1", meds[0].ID)
	})

	t.Run("non-array success body becomes an empty list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"no medicines"}`))
		})

		meds, err := c.ListMedicines(context.Background())
		require.NoError(t, err)
		assert.Empty(t, meds)
	})
}

func TestAddMedicine_ResponseShapes(t *testing.T) {
	t.Run("entity response", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			_, _ = w.Write([]byte(`{"_id":"m9","name":"Ibuprofen","dosage":"200mg","frequency":"as needed","user":"u1"}`))
		})

		med, err := c.AddMedicine(context.Background(), fields("Ibuprofen"))
		require.NoError(t, err)
		require.NotNil(t, med)
		assert.Equal(t, "m9", med.ID)
	})

	t.Run("array response means reload", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"_id":"m1"},{"_id":"m2"}]`))
		})

		med, err := c.AddMedicine(context.Background(), fields("Ibuprofen"))
		require.NoError(t, err)
		assert.Nil(t, med)
	})

	t.Run("entity without id means reload", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		med, err := c.AddMedicine(context.Background(), fields("Ibuprofen"))
		require.NoError(t, err)
		assert.Nil(t, med)
	})
}

func TestUpdateAndDeleteMedicine_UseIDPath(t *testing.T) {
	var gotPath, gotMethod string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"_id":"m1","name":"Aspirin","dosage":"100mg","frequency":"daily","user":"u1"}`))
	})

	_, err := c.UpdateMedicine(context.Background(), "m1", fields("Aspirin"))
	require.NoError(t, err)
	assert.Equal(t, "/api/medicines/m1", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)

	require.NoError(t, c.DeleteMedicine(context.Background(), "m1"))
	assert.Equal(t, "/api/medicines/m1", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestUpdateMedicine_ResponseShapes(t *testing.T) {
	t.Run("entity response", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"_id":"m1","name":"Aspirin","dosage":"100mg","frequency":"daily","user":"u1"}`))
		})

		med, err := c.UpdateMedicine(context.Background(), "m1", fields("Aspirin"))
		require.NoError(t, err)
		require.NotNil(t, med)
		assert.Equal(t, "m1", med.ID)
	})

	t.Run("ack object means reload", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		med, err := c.UpdateMedicine(context.Background(), "m1", fields("Aspirin"))
		require.NoError(t, err)
		assert.Nil(t, med, "an entity without an id must not reach the caller")
	})

	t.Run("array response means reload", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"_id":"m1"},{"_id":"m2"}]`))
		})

		med, err := c.UpdateMedicine(context.Background(), "m1", fields("Aspirin"))
		require.NoError(t, err)
		assert.Nil(t, med)
	})
}

func TestTransportFailureWrapsErrUnavailable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond, logging.Nop())

	_, err := c.ListMedicines(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestDecode_EmptyBodyIsEmptyObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.DeleteMedicine(context.Background(), "m1"))
}
