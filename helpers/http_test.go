package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/charset"

	"jpdiet/kokkaiharvester/config"
)

func testConfig() config.Config {
	return config.Config{
		RequestTimeout: 5 * time.Second,
		RetryCount:     0,
		RetryWait:      10 * time.Millisecond,
		UserAgent:      "kokkaiharvester-test/1.0",
	}
}

func encodeAs(t *testing.T, s, encodingName string) []byte {
	t.Helper()
	enc, _ := charset.Lookup(encodingName)
	require.NotNil(t, enc)
	out, err := enc.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(out)
}

func TestGetDecodedShiftJIS(t *testing.T) {
	const page = "<html><body>質問本文情報</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kokkaiharvester-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=shift_jis")
		w.Write(encodeAs(t, page, "shift_jis"))
	}))
	defer server.Close()

	client := NewClient(testConfig())
	body, err := client.GetDecoded(context.Background(), server.URL, "shift_jis", nil)
	assert.NoError(t, err)
	assert.Contains(t, body, "質問本文情報")
}

func TestGetDecodedPassesQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("recordPacking"))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(testConfig())
	body, err := client.GetDecoded(context.Background(), server.URL, "", map[string]string{"recordPacking": "json"})
	assert.NoError(t, err)
	assert.Equal(t, "ok", body)
}

func TestGetDecodedNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig())
	_, err := client.GetDecoded(context.Background(), server.URL, "", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 404")
}

func TestDecodeBytes(t *testing.T) {
	const text = "第217回国会"

	decoded, err := DecodeBytes(encodeAs(t, text, "euc-jp"), "euc-jp")
	assert.NoError(t, err)
	assert.Equal(t, text, decoded)

	decoded, err = DecodeBytes([]byte(text), "utf-8")
	assert.NoError(t, err)
	assert.Equal(t, text, decoded)

	decoded, err = DecodeBytes([]byte(text), "")
	assert.NoError(t, err)
	assert.Equal(t, text, decoded)

	_, err = DecodeBytes([]byte(text), "no-such-encoding")
	assert.Error(t, err)
}
