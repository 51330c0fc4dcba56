package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow/formflow/pkg/schema"
)

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	_, err = New("not a url")
	assert.Error(t, err)
}

func TestCreateUser_Success(t *testing.T) {
	var got schema.User
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/create-user", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	user := schema.User{RollNumber: "42", Name: "Alice"}
	require.NoError(t, c.CreateUser(context.Background(), user))
	assert.Equal(t, user, got)
}

func TestCreateUser_SurfacesServiceMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"User already exists"}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	err = c.CreateUser(context.Background(), schema.User{RollNumber: "42", Name: "Alice"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "User already exists", apiErr.Error())
}

func TestCreateUser_FailureWithoutMessageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	err = c.CreateUser(context.Background(), schema.User{RollNumber: "42"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Error(), "500")
}

func TestFetchForm_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/get-form", r.URL.Path)
		require.Equal(t, "42", r.URL.Query().Get("rollNumber"))

		_, _ = w.Write([]byte(`{
			"message": "Form fetched",
			"form": {
				"formTitle": "Onboarding",
				"formId": "onboarding-v1",
				"version": "1",
				"sections": [
					{
						"sectionId": 1,
						"title": "Identity",
						"fields": [
							{"fieldId": "name", "type": "TEXT", "label": "Name", "required": true}
						]
					}
				]
			}
		}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	form, err := c.FetchForm(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "onboarding-v1", form.FormID)
	require.Len(t, form.Sections, 1)
	assert.Equal(t, schema.FieldKindText, form.Sections[0].Fields[0].Kind)
}

func TestFetchForm_GenericFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non-2xx": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"bad payload": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"form": "nope"`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()

			c, err := New(server.URL)
			require.NoError(t, err)

			_, err = c.FetchForm(context.Background(), "42")
			assert.Error(t, err)
		})
	}
}

func TestFetchForm_RequiresRollNumber(t *testing.T) {
	c, err := New("http://localhost:9")
	require.NoError(t, err)

	_, err = c.FetchForm(context.Background(), " ")
	assert.Error(t, err)
}
