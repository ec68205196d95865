// Package publisher contains components that store publication metadata on a
// content-addressable network
package publisher // import "github.com/tapexyz/tape-publisher/pkg/publisher"

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

const (
	arweaveScheme = "ar://"

	// ContentIDHeader carries the content id of the uploaded metadata so the
	// worker can tag and dedupe identical uploads
	ContentIDHeader = "X-Content-Id"

	defaultTimeoutSecs = 30
	maxErrorBodyBytes  = 512
)

// Publisher stores metadata and returns a uri referencing it. contentID is
// the deterministic id of the metadata content.
type Publisher interface {
	Publish(ctx context.Context, meta *model.PublicationMetadata, contentID string) (string, error)
}

// NewArweavePublisher returns a publisher that uploads through the Irys
// metadata worker at uploadURL
func NewArweavePublisher(uploadURL string, client *http.Client) *ArweavePublisher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeoutSecs * time.Second}
	}
	return &ArweavePublisher{uploadURL: uploadURL, client: client}
}

// ArweavePublisher uploads metadata to Arweave via the metadata worker
type ArweavePublisher struct {
	uploadURL string
	client    *http.Client
}

type uploadResponse struct {
	ID string `json:"id"`
}

// Publish uploads the metadata and returns an ar:// uri. No retry is done here.
func (a *ArweavePublisher) Publish(ctx context.Context, meta *model.PublicationMetadata,
	contentID string) (string, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return "", errors.Wrap(err, "error marshalling metadata")
	}
	req, err := http.NewRequest(http.MethodPost, a.uploadURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "error creating upload request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	if contentID != "" {
		req.Header.Set(ContentIDHeader, contentID)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "error uploading metadata")
	}
	defer resp.Body.Close() // nolint: errcheck

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) // nolint: gosec
		return "", errors.Errorf("error uploading metadata: status %v: %s", resp.StatusCode, body)
	}

	upload := &uploadResponse{}
	err = json.NewDecoder(resp.Body).Decode(upload)
	if err != nil {
		return "", errors.Wrap(err, "error decoding upload response")
	}
	if upload.ID == "" {
		return "", errors.New("upload response missing id")
	}
	log.V(2).Infof("Uploaded metadata %v (%v) to %v", meta.MetadataID, contentID, upload.ID)
	return arweaveScheme + upload.ID, nil
}
