package lens_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/model"
)

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// testServer responds with the first canned response whose key is contained
// in the query, and records the received requests
type testServer struct {
	t         *testing.T
	responses map[string]string
	requests  []*gqlRequest
}

func (s *testServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := &gqlRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.t.Errorf("Should have sent a valid graphql request: err: %v", err)
	}
	s.requests = append(s.requests, req)
	for key, resp := range s.responses {
		if strings.Contains(req.Query, key) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp)) // nolint: errcheck
			return
		}
	}
	s.t.Errorf("Unexpected query: %v", req.Query)
	w.WriteHeader(http.StatusBadRequest)
}

func setupClient(t *testing.T, responses map[string]string) (*lens.Client, *testServer, func()) {
	ts := &testServer{t: t, responses: responses}
	server := httptest.NewServer(ts)
	return lens.NewClientWithHTTP(server.URL, server.Client()), ts, server.Close
}

func testOnChainRequest() *model.OnChainCommentRequest {
	req, _ := model.NewOnChainSubmissionRequest("0x2d", "0x01-0x02", "ar://abc").OnChain()
	return req
}

func testDARequest() *model.DataAvailabilityCommentRequest {
	req, _ := model.NewDataAvailabilitySubmissionRequest("0x2d", "0x01-DA-abc", "ar://abc").DataAvailability()
	return req
}

func TestCreateCommentViaDispatcher(t *testing.T) {
	client, ts, done := setupClient(t, map[string]string{
		"createCommentViaDispatcher": `{"data":{"createCommentViaDispatcher":{"__typename":"RelayerResult","txId":"tx-1","txHash":"0xhash"}}}`,
	})
	defer done()

	res, err := client.CreateCommentViaDispatcher(context.Background(), testOnChainRequest())
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	if res.IsRelayError() {
		t.Errorf("Should not have been a relay error")
	}
	if res.TxID != "tx-1" || res.TxHash != "0xhash" {
		t.Errorf("Wrong relayer result: %v", res)
	}
	if !strings.Contains(ts.requests[0].Query, "$request:CreatePublicCommentRequest!") {
		t.Errorf("Should have declared the request variable type: %v", ts.requests[0].Query)
	}
	request := ts.requests[0].Variables["request"].(map[string]interface{})
	if request["profileId"] != "0x2d" || request["publicationId"] != "0x01-0x02" {
		t.Errorf("Wrong request variables: %v", request)
	}
}

func TestCreateCommentViaDispatcherRelayError(t *testing.T) {
	client, _, done := setupClient(t, map[string]string{
		"createCommentViaDispatcher": `{"data":{"createCommentViaDispatcher":{"__typename":"RelayError","reason":"REJECTED"}}}`,
	})
	defer done()

	res, err := client.CreateCommentViaDispatcher(context.Background(), testOnChainRequest())
	if err != nil {
		t.Fatalf("Relay errors should not be transport errors: err: %v", err)
	}
	if !res.IsRelayError() || res.Reason != "REJECTED" {
		t.Errorf("Should have been a relay error: %v", res)
	}
}

func TestCreateCommentTypedData(t *testing.T) {
	client, ts, done := setupClient(t, map[string]string{
		"createCommentTypedData": `{"data":{"createCommentTypedData":{"id":"td-1","expiresAt":"2023-10-10T00:00:00.000Z","typedData":{
			"types":{"CommentWithSig":[{"name":"profileId","type":"uint256"},{"name":"contentURI","type":"string"}]},
			"domain":{"name":"Lens Protocol Profiles","chainId":80001,"version":"1","verifyingContract":"0x60Ae865ee4C725cd04353b5AAb364553f56ceF82"},
			"value":{"nonce":7,"deadline":1696896000,"profileId":"0x2d","contentURI":"ar://abc","profileIdPointed":"0x01","pubIdPointed":"0x02",
			"referenceModuleData":"0x","collectModule":"0x5E70fFD2C6D04d65C3abeBa64E93082cfA348dF8","collectModuleInitData":"0x",
			"referenceModule":"0x0000000000000000000000000000000000000000","referenceModuleInitData":"0x"}}}}}`,
	})
	defer done()

	res, err := client.CreateCommentTypedData(context.Background(), testOnChainRequest(), 7)
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	if res.ID != "td-1" {
		t.Errorf("Wrong typed data id: %v", res.ID)
	}
	td := res.TypedData
	if td.PrimaryType != "CommentWithSig" || len(td.Types) != 2 {
		t.Errorf("Wrong typed data types: %v %v", td.PrimaryType, td.Types)
	}
	if td.Domain.ChainID != 80001 || td.Domain.VerifyingContract != "0x60Ae865ee4C725cd04353b5AAb364553f56ceF82" {
		t.Errorf("Wrong typed data domain: %v", td.Domain)
	}
	if td.Value.Nonce != 7 || td.Value.ProfileIDPointed != "0x01" || td.Value.PubIDPointed != "0x02" {
		t.Errorf("Wrong typed data value: %v", td.Value)
	}
	options := ts.requests[0].Variables["options"].(map[string]interface{})
	if options["overrideSigNonce"].(float64) != 7 {
		t.Errorf("Should have overridden the sig nonce: %v", options)
	}
}

func TestBroadcastDataAvailability(t *testing.T) {
	client, _, done := setupClient(t, map[string]string{
		"broadcastDataAvailability":                  `{"data":{"broadcastDataAvailability":{"__typename":"CreateDataAvailabilityPublicationResult","id":"0x2d-DA-0xabc"}}}`,
		"createDataAvailabilityCommentViaDispatcher": `{"data":{"createDataAvailabilityCommentViaDispatcher":{"__typename":"RelayError","reason":"NOT_SPONSORED"}}}`,
	})
	defer done()

	res, err := client.BroadcastDataAvailability(context.Background(), "td-1", "0xsig")
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	if res.IsRelayError() || res.ID != "0x2d-DA-0xabc" {
		t.Errorf("Wrong data availability result: %v", res)
	}

	res, err = client.CreateDataAvailabilityCommentViaDispatcher(context.Background(), testDARequest())
	if err != nil {
		t.Fatalf("Should not have failed: err: %v", err)
	}
	if !res.IsRelayError() || res.Reason != "NOT_SPONSORED" {
		t.Errorf("Should have been a relay error: %v", res)
	}
}

func TestPublicationAndProfile(t *testing.T) {
	client, _, done := setupClient(t, map[string]string{
		"publication(": `{"data":{"publication":{"__typename":"Post","id":"0x01-0x02","isDataAvailability":true,
			"metadata":{"name":"My video"},"profile":{"id":"0x01","handle":"creator.lens","ownedBy":"0x77e5aaBddb760FBa989A1C4B2CDd4aA8Fa3d311d"}}}}`,
		"profile(": `{"data":{"profile":{"id":"0x2d","handle":"tape.lens","ownedBy":"0xDFe273082089bB7f70Ee36Eebcde64832FE97E55",
			"dispatcher":{"address":"0xD1FecCF6881970105dfb2b654054174007f0e07E","canUseRelay":true,"sponsor":false}}}}`,
	})
	defer done()

	pub, err := client.Publication(context.Background(), "0x01-0x02")
	if err != nil {
		t.Fatalf("Should not have failed to get publication: err: %v", err)
	}
	if !pub.IsDataAvailability() || pub.MetadataName() != "My video" || pub.ProfileHandle() != "creator.lens" {
		t.Errorf("Wrong publication: %v", pub)
	}
	if pub.OwnedBy() != common.HexToAddress("0x77e5aaBddb760FBa989A1C4B2CDd4aA8Fa3d311d") {
		t.Errorf("Wrong publication owner: %v", pub.OwnedBy().Hex())
	}

	channel, err := client.Profile(context.Background(), "0x2d")
	if err != nil {
		t.Fatalf("Should not have failed to get profile: err: %v", err)
	}
	if !channel.CanUseRelay() || channel.IsSponsored() || !channel.UsingOldDispatcher() {
		t.Errorf("Wrong dispatcher: %v", channel.Dispatcher())
	}
}

func TestMissingPublication(t *testing.T) {
	client, _, done := setupClient(t, map[string]string{
		"publication(": `{"data":{"publication":null}}`,
	})
	defer done()

	_, err := client.Publication(context.Background(), "0x01-0x99")
	if err != model.ErrNoPersisterResults {
		t.Errorf("Should have returned no results: err: %v", err)
	}
}

func TestGraphQLError(t *testing.T) {
	client, _, done := setupClient(t, map[string]string{
		"broadcast(": `{"data":null,"errors":[{"message":"expired typed data"}]}`,
	})
	defer done()

	_, err := client.Broadcast(context.Background(), "td-1", "0xsig")
	apiErr, ok := errors.Cause(err).(*lens.APIError)
	if !ok {
		t.Fatalf("Should have returned an api error, got %v", err)
	}
	if apiErr.Message != "expired typed data" {
		t.Errorf("Should have kept the server message, got %v", apiErr.Message)
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	client := lens.NewClientWithHTTP(server.URL, server.Client())

	_, err := client.Broadcast(context.Background(), "td-1", "0xsig")
	if err == nil {
		t.Fatalf("Should have failed on a bad status")
	}
	if _, ok := errors.Cause(err).(*lens.APIError); ok {
		t.Errorf("Transport errors should not be api errors: %v", err)
	}
}

func TestUserSigNonce(t *testing.T) {
	client, ts, done := setupClient(t, map[string]string{
		"userSigNonces": `{"data":{"userSigNonces":{"lensHubOnChainSigNonce":42}}}`,
	})
	defer done()

	nonce, err := client.UserSigNonce(context.Background())
	if err != nil {
		t.Fatalf("Should not have failed to get the nonce: err: %v", err)
	}
	if nonce != 42 {
		t.Errorf("Should have returned 42, got %v", nonce)
	}
	if !strings.Contains(ts.requests[0].Query, "lensHubOnChainSigNonce") {
		t.Errorf("Should have queried the on-chain sig nonce: %v", ts.requests[0].Query)
	}
}
