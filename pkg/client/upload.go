package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/graphport/graphport/pkg/buildinfo"
	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/httputil"
)

// DatasetUpload is the columnar upload request: dataset metadata plus the
// serialized Arrow IPC streams for each table. The encodings fields are
// marshaled as-is into the creation request.
type DatasetUpload struct {
	Name        string
	Description string
	Metadata    map[string]any

	EdgeFile []byte
	NodeFile []byte

	EdgeEncodings any
	NodeEncodings any
}

// UploadInfo is what the legacy ETL endpoints return about an uploaded
// dataset.
type UploadInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Viztoken string `json:"viztoken"`
}

type createDatasetResponse struct {
	Data struct {
		DatasetID string `json:"dataset_id"`
	} `json:"data"`
	DatasetID string `json:"dataset_id"`
}

func (r createDatasetResponse) id() string {
	if r.Data.DatasetID != "" {
		return r.Data.DatasetID
	}
	return r.DatasetID
}

// UploadDataset creates a dataset and uploads its edge and node tables.
// Returns the server-assigned dataset id.
func (c *Client) UploadDataset(ctx context.Context, up DatasetUpload) (string, error) {
	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"name":           up.Name,
		"description":    up.Description,
		"metadata":       up.Metadata,
		"edge_encodings": up.EdgeEncodings,
		"node_encodings": up.NodeEncodings,
	}
	var created createDatasetResponse
	err = httputil.Retry(ctx, 3, time.Second, func() error {
		return c.doJSON(ctx, http.MethodPost, c.url("/api/v2/upload/datasets/"), body, &created, token)
	})
	if err != nil {
		return "", err
	}
	id := created.id()
	if id == "" {
		return "", errors.New(errors.ErrCodeNetwork, "dataset creation returned no id")
	}

	for _, part := range []struct {
		kind string
		data []byte
	}{
		{"edges", up.EdgeFile},
		{"nodes", up.NodeFile},
	} {
		endpoint := c.url("/api/v2/upload/datasets/%s/%s/arrow", id, part.kind)
		err = httputil.Retry(ctx, 3, time.Second, func() error {
			return c.do(ctx, http.MethodPost, endpoint, "application/octet-stream", part.data, token, nil)
		})
		if err != nil {
			return "", errors.Wrap(errors.GetCode(err), err, "upload %s", part.kind)
		}
	}

	return id, nil
}

// ETL posts a record-list or legacy binary payload to the key-authenticated
// ETL endpoint used by API versions 1 and 2.
func (c *Client) ETL(ctx context.Context, apiVersion int, payload any) (UploadInfo, error) {
	if c.cfg.Key == "" {
		return UploadInfo{}, errors.New(errors.ErrCodeUnauthorized,
			"an API key is required for API versions 1 and 2")
	}

	q := url.Values{}
	q.Set("key", c.cfg.Key)
	q.Set("agent", buildinfo.Agent)
	q.Set("apiversion", strconv.Itoa(apiVersion))

	var info UploadInfo
	endpoint := c.url("/etl") + "?" + q.Encode()
	err := httputil.Retry(ctx, 3, time.Second, func() error {
		return c.doJSON(ctx, http.MethodPost, endpoint, payload, &info, "")
	})
	if err != nil {
		return UploadInfo{}, err
	}
	return info, nil
}
