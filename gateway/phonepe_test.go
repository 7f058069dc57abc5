package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, hostURL string) *PhonePeClient {
	t.Helper()
	t.Setenv("PHONEPE_MERCHANT_ID", "MERCHANTTEST")
	t.Setenv("PHONEPE_SALT_KEY", "test-salt-key")
	t.Setenv("PHONEPE_SALT_INDEX", "1")
	t.Setenv("PHONEPE_HOST_URL", hostURL)
	t.Setenv("BACKEND_URL", "https://api.test")
	return NewPhonePeClient()
}

func TestChecksumFormat(t *testing.T) {
	sum := checksum("payload", "salt", "1")

	parts := strings.Split(sum, "###")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 64)
	assert.Equal(t, "1", parts[1])

	// Same input, same signature; different salt, different signature.
	assert.Equal(t, sum, checksum("payload", "salt", "1"))
	assert.NotEqual(t, sum, checksum("payload", "other", "1"))
}

func TestCreatePaymentSignsAndParsesRedirect(t *testing.T) {
	var gotVerify, gotEncoded string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, payPath, r.URL.Path)
		gotVerify = r.Header.Get("X-VERIFY")

		var body struct {
			Request string `json:"request"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotEncoded = body.Request

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"instrumentResponse":{"redirectInfo":{"url":"https://pay.test/redirect"}}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	url, err := client.CreatePayment(context.Background(), 1050, "TXN-abc", 7)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/redirect", url)

	require.NotEmpty(t, gotEncoded)
	assert.Equal(t, checksum(gotEncoded+payPath, "test-salt-key", "1"), gotVerify)
}

func TestCreatePaymentRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"KEY_NOT_CONFIGURED"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.CreatePayment(context.Background(), 1050, "TXN-abc", 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KEY_NOT_CONFIGURED")
}

func TestGetStatusMapsStates(t *testing.T) {
	cases := []struct {
		upstream string
		want     PaymentState
	}{
		{"COMPLETED", StateCompleted},
		{"PENDING", StatePending},
		{"FAILED", StateFailed},
		{"DECLINED", StateFailed},
	}

	for _, tc := range cases {
		t.Run(tc.upstream, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, statusPath+"/MERCHANTTEST/TXN-abc", r.URL.Path)
				assert.Equal(t, "MERCHANTTEST", r.Header.Get("X-MERCHANT-ID"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success":true,"data":{"state":"` + tc.upstream + `"}}`))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			state, err := client.GetStatus(context.Background(), "TXN-abc")
			require.NoError(t, err)
			assert.Equal(t, tc.want, state)
		})
	}
}
