package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorAndPatientFlow(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "ana@patasfelizes.com", "123456")

	status, resp := doRequest(t, srv, http.MethodPost, "/tutors", map[string]interface{}{
		"name":  "Maria Oliveira",
		"cpf":   "529.982.247-25",
		"phone": "11987654321",
		"email": "maria.oliveira@email.com",
	}, token)
	require.Equal(t, http.StatusCreated, status, resp.Message)

	var tutor struct {
		ID    string `json:"id"`
		CPF   string `json:"cpf"`
		Phone string `json:"phone"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &tutor))
	assert.Equal(t, "529.982.247-25", tutor.CPF)
	assert.Equal(t, "(11) 98765-4321", tutor.Phone)

	status, resp = doRequest(t, srv, http.MethodPost, "/patients", map[string]interface{}{
		"name":       "Luna",
		"tutor_id":   tutor.ID,
		"species":    "cat",
		"breed":      "Siamese",
		"gender":     "female",
		"birth_date": time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		"weight":     4.2,
	}, token)
	require.Equal(t, http.StatusCreated, status, resp.Message)

	var patient struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &patient))

	status, resp = doRequest(t, srv, http.MethodGet, "/patients/"+patient.ID, nil, token)
	require.Equal(t, http.StatusOK, status)

	status, resp = doRequest(t, srv, http.MethodGet, "/tutors/"+tutor.ID+"/patients", nil, token)
	require.Equal(t, http.StatusOK, status)
	var patients []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &patients))
	assert.Len(t, patients, 1)
}

func TestCreateTutorRejectsBadCPF(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "ana@patasfelizes.com", "123456")

	status, _ := doRequest(t, srv, http.MethodPost, "/tutors", map[string]interface{}{
		"name":  "Maria Oliveira",
		"cpf":   "111.111.111-11",
		"phone": "11987654321",
		"email": "maria.oliveira@email.com",
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreatePatientUnknownTutorFails(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "ana@patasfelizes.com", "123456")

	status, _ := doRequest(t, srv, http.MethodPost, "/patients", map[string]interface{}{
		"name":       "Luna",
		"tutor_id":   "7c8a58a1-27c5-47b3-8e57-ec338ad62d2a",
		"species":    "cat",
		"breed":      "Siamese",
		"gender":     "female",
		"birth_date": time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		"weight":     4.2,
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSeededRegistryVisible(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "carlos@patasfelizes.com", "123456")

	status, resp := doRequest(t, srv, http.MethodGet, "/patients", nil, token)
	require.Equal(t, http.StatusOK, status)

	var patients []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &patients))
	require.Len(t, patients, 1)
	assert.Equal(t, "Rex", patients[0].Name)
}
