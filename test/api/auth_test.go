package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLogoutFlow(t *testing.T) {
	srv := newTestServer(t)

	token := login(t, srv, "ana@patasfelizes.com", "123456")

	status, resp := doRequest(t, srv, http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, status)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "ana@patasfelizes.com", me.Email)
	assert.Equal(t, "receptionist", me.Role)

	status, _ = doRequest(t, srv, http.MethodPost, "/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, srv, http.MethodGet, "/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, status, "revoked token must be rejected")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doRequest(t, srv, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ana@patasfelizes.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doRequest(t, srv, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ghost@patasfelizes.com",
		"password": "123456",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doRequest(t, srv, http.MethodGet, "/patients", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoleGates(t *testing.T) {
	srv := newTestServer(t)

	receptionist := login(t, srv, "ana@patasfelizes.com", "123456")
	stockkeeper := login(t, srv, "pedro@patasfelizes.com", "123456")
	vet := login(t, srv, "carlos@patasfelizes.com", "123456")
	admin := login(t, srv, "maria@patasfelizes.com", "123456")

	cases := []struct {
		name   string
		token  string
		path   string
		status int
	}{
		{"receptionist sees patients", receptionist, "/patients", http.StatusOK},
		{"receptionist blocked from products", receptionist, "/products", http.StatusForbidden},
		{"receptionist blocked from medical records", receptionist, "/medical-records", http.StatusForbidden},
		{"stockkeeper sees products", stockkeeper, "/products", http.StatusOK},
		{"stockkeeper blocked from patients", stockkeeper, "/patients", http.StatusForbidden},
		{"stockkeeper blocked from sales", stockkeeper, "/sales", http.StatusForbidden},
		{"veterinarian sees medical records", vet, "/medical-records", http.StatusOK},
		{"veterinarian blocked from sales", vet, "/sales", http.StatusForbidden},
		{"admin sees sales", admin, "/sales", http.StatusOK},
		{"admin sees audit trail", admin, "/audit", http.StatusOK},
		{"everyone sees dashboard", stockkeeper, "/dashboard/stats", http.StatusOK},
		{"everyone sees notifications", vet, "/notifications", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := doRequest(t, srv, http.MethodGet, tc.path, nil, tc.token)
			assert.Equal(t, tc.status, status)
		})
	}
}
