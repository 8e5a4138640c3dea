package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emzola/shelf/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsJSON = `{
  "ItemsResult": {
    "Items": [{
      "ASIN": "4101010013",
      "ItemInfo": {
        "Title": {"DisplayValue": "Kokoro"},
        "ByLineInfo": {"Contributors": [{"Name": "Natsume Soseki", "Role": "Author"}, {"Name": "Translator", "Role": "Translator"}]},
        "ContentInfo": {"PublicationDate": {"DisplayValue": "1952-02-01T00:00:01Z"}},
        "Classifications": {"ProductGroup": {"DisplayValue": "Book"}}
      },
      "Images": {"Primary": {"Large": {"URL": "https://m.media-amazon.com/images/I/kokoro.jpg"}}}
    }]
  }
}`

func newTestProductClient(t *testing.T, handler http.HandlerFunc) *ProductClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.Default()
	cfg.Provider.AccessKey = "AKIDEXAMPLE"
	cfg.Provider.SecretKey = "secret"
	cfg.Provider.PartnerTag = "shelf-22"
	cfg.Provider.Host = srv.URL
	return NewProductClient(cfg, NewHTTPClient(2*time.Second))
}

func TestGetItems(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/paapi5/getitems", r.URL.Path)
		assert.Equal(t, "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.GetItems", r.Header.Get("X-Amz-Target"))
		assert.Equal(t, "amz-1.0", r.Header.Get("Content-Encoding"))
		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/"), auth)
		assert.Contains(t, auth, "/us-west-2/ProductAdvertisingAPI/aws4_request")
		assert.NotEmpty(t, r.Header.Get("X-Amz-Date"))

		var body getItemsRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		assert.Equal(t, []string{"4101010013"}, body.ItemIds)
		assert.Equal(t, BookResources, body.Resources)
		assert.Equal(t, "shelf-22", body.PartnerTag)
		assert.Equal(t, "Associates", body.PartnerType)
		assert.Equal(t, "www.amazon.co.jp", body.Marketplace)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, itemsJSON)
	})

	resp, err := client.GetItems(context.Background(), []string{"4101010013"})
	require.NoError(t, err)
	items := resp.Items()
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Kokoro", item.Title())
	assert.Equal(t, "Natsume Soseki", item.Author())
	assert.Equal(t, "https://m.media-amazon.com/images/I/kokoro.jpg", item.CoverURL())
	year, ok := item.PublicationYear()
	assert.True(t, ok)
	assert.Equal(t, int32(1952), year)
	assert.Equal(t, "Book", item.ProductGroup())
}

func TestGetItemsNoItems(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"Errors":[{"Code":"InvalidParameterValue","Message":"The ItemId is not accessible"}]}`)
	})
	resp, err := client.GetItems(context.Background(), []string{"B000000000"})
	require.NoError(t, err)
	assert.Empty(t, resp.Items())
}

func TestGetItemsAPIError(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"Errors":[{"Code":"TooManyRequests","Message":"Slow down"}]}`)
	})
	_, err := client.GetItems(context.Background(), []string{"4101010013"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "TooManyRequests", apiErr.Code)
	assert.Equal(t, "Slow down", apiErr.Message)
}

func TestGetItemsNonJSONError(t *testing.T) {
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	_, err := client.GetItems(context.Background(), []string{"4101010013"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "HTTPError", apiErr.Code)
}

func TestGetItemsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
		// The connection is only watched for a client hang-up once the body is consumed
		io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	// Cleanups run last-in first-out, so the handler is released before the server closes
	t.Cleanup(func() { close(release) })
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.GetItems(ctx, []string{"4101010013"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestItemMissingFields(t *testing.T) {
	var item Item
	assert.Equal(t, "", item.Title())
	assert.Equal(t, "", item.Author())
	assert.Equal(t, "", item.CoverURL())
	assert.Equal(t, "", item.ProductGroup())
	_, ok := item.PublicationYear()
	assert.False(t, ok)
}
