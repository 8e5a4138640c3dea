package clients

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/emzola/shelf/config"
)

const (
	paapiService = "ProductAdvertisingAPI"
	paapiTarget  = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.GetItems"
	paapiPath    = "/paapi5/getitems"
)

// BookResources are the GetItems resources needed to fill in a book.
var BookResources = []string{
	"ItemInfo.Title",
	"ItemInfo.ByLineInfo",
	"ItemInfo.ContentInfo",
	"Images.Primary.Large",
	"ItemInfo.Classifications",
}

// ProductClient calls the Product Advertising API 5.0 with SigV4-signed requests.
type ProductClient struct {
	httpClient  *http.Client
	credentials aws.CredentialsProvider
	signer      *v4.Signer
	endpoint    string
	region      string
	partnerTag  string
	marketplace string
	now         func() time.Time
}

// NewProductClient configures a client from the provider settings. A host
// without a scheme is reached over https.
func NewProductClient(cfg config.Config, httpClient *http.Client) *ProductClient {
	host := cfg.Provider.Host
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return &ProductClient{
		httpClient:  httpClient,
		credentials: credentials.NewStaticCredentialsProvider(cfg.Provider.AccessKey, cfg.Provider.SecretKey, ""),
		signer:      v4.NewSigner(),
		endpoint:    strings.TrimSuffix(host, "/") + paapiPath,
		region:      cfg.Provider.Region,
		partnerTag:  cfg.Provider.PartnerTag,
		marketplace: cfg.Provider.Marketplace,
		now:         time.Now,
	}
}

type getItemsRequest struct {
	ItemIds     []string `json:"ItemIds"`
	Resources   []string `json:"Resources"`
	Condition   string   `json:"Condition"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
}

// GetItemsResponse is the subset of the GetItems response the shelf reads.
type GetItemsResponse struct {
	ItemsResult *struct {
		Items []Item `json:"Items"`
	} `json:"ItemsResult"`
	Errors []APIError `json:"Errors"`
}

// Items returns the returned items, or nil when the API matched nothing.
func (r *GetItemsResponse) Items() []Item {
	if r == nil || r.ItemsResult == nil {
		return nil
	}
	return r.ItemsResult.Items
}

type displayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

// Item is a single product returned by GetItems.
type Item struct {
	ASIN     string `json:"ASIN"`
	ItemInfo *struct {
		Title      *displayValue `json:"Title"`
		ByLineInfo *struct {
			Contributors []struct {
				Name string `json:"Name"`
				Role string `json:"Role"`
			} `json:"Contributors"`
		} `json:"ByLineInfo"`
		ContentInfo *struct {
			PublicationDate *displayValue `json:"PublicationDate"`
		} `json:"ContentInfo"`
		Classifications *struct {
			ProductGroup *displayValue `json:"ProductGroup"`
		} `json:"Classifications"`
	} `json:"ItemInfo"`
	Images *struct {
		Primary *struct {
			Large *struct {
				URL string `json:"URL"`
			} `json:"Large"`
		} `json:"Primary"`
	} `json:"Images"`
}

// Title returns the item title or "".
func (i Item) Title() string {
	if i.ItemInfo == nil || i.ItemInfo.Title == nil {
		return ""
	}
	return i.ItemInfo.Title.DisplayValue
}

// Author returns the first contributor or "".
func (i Item) Author() string {
	if i.ItemInfo == nil || i.ItemInfo.ByLineInfo == nil || len(i.ItemInfo.ByLineInfo.Contributors) == 0 {
		return ""
	}
	return i.ItemInfo.ByLineInfo.Contributors[0].Name
}

// CoverURL returns the large primary image URL or "".
func (i Item) CoverURL() string {
	if i.Images == nil || i.Images.Primary == nil || i.Images.Primary.Large == nil {
		return ""
	}
	return i.Images.Primary.Large.URL
}

// PublicationYear parses the year from the publication date, e.g. "2019-03-05T00:00:01Z".
func (i Item) PublicationYear() (int32, bool) {
	if i.ItemInfo == nil || i.ItemInfo.ContentInfo == nil || i.ItemInfo.ContentInfo.PublicationDate == nil {
		return 0, false
	}
	value := i.ItemInfo.ContentInfo.PublicationDate.DisplayValue
	if len(value) < 4 {
		return 0, false
	}
	year, err := strconv.ParseInt(value[:4], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(year), true
}

// ProductGroup returns the product group, e.g. "Book", or "".
func (i Item) ProductGroup() string {
	if i.ItemInfo == nil || i.ItemInfo.Classifications == nil || i.ItemInfo.Classifications.ProductGroup == nil {
		return ""
	}
	return i.ItemInfo.Classifications.ProductGroup.DisplayValue
}

// APIError is an error reported by the Product Advertising API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("product advertising api: %s: %s (status %d)", e.Code, e.Message, e.Status)
}

// GetItems looks up items by ASIN. A response with no items is not an error;
// callers check Items.
func (c *ProductClient) GetItems(ctx context.Context, itemIDs []string) (*GetItemsResponse, error) {
	body, err := json.Marshal(getItemsRequest{
		ItemIds:     itemIDs,
		Resources:   BookResources,
		Condition:   "New",
		PartnerTag:  c.partnerTag,
		PartnerType: "Associates",
		Marketplace: c.marketplace,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-Amz-Target", paapiTarget)
	creds, err := c.credentials.Retrieve(ctx)
	if err != nil {
		return nil, err
	}
	payloadHash := sha256.Sum256(body)
	err = c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(payloadHash[:]), paapiService, c.region, c.now())
	if err != nil {
		return nil, fmt.Errorf("signing request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var out GetItemsResponse
	if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Code: "HTTPError", Message: http.StatusText(resp.StatusCode)}
		if len(out.Errors) > 0 {
			apiErr.Code = out.Errors[0].Code
			apiErr.Message = out.Errors[0].Message
		}
		return nil, apiErr
	}
	return &out, nil
}
