package client

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/cdp-wallet/internal/erc20"
	"github.com/AlexZinkM/cdp-wallet/internal/model"
	"github.com/AlexZinkM/cdp-wallet/internal/walleterr"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testKeys struct {
	apiPub     ed25519.PublicKey
	apiSecret  string
	walletKey  *ecdsa.PrivateKey
	walletSecr string
}

func newTestKeys(t *testing.T) testKeys {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	wk, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(wk)
	require.NoError(t, err)

	return testKeys{
		apiPub:     pub,
		apiSecret:  base64.StdEncoding.EncodeToString(priv),
		walletKey:  wk,
		walletSecr: base64.StdEncoding.EncodeToString(der),
	}
}

func newTestCDP(t *testing.T, keys testKeys, url string) *CDPClient {
	t.Helper()
	c, err := NewCDPClient(CDPConfig{
		BaseURL:      url,
		APIKeyID:     "organizations/org/apiKeys/key",
		APIKeySecret: keys.apiSecret,
		WalletSecret: keys.walletSecr,
		Network:      "base",
		ChainID:      8453,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

// verifyAuth checks both JWTs and returns the decoded request body.
func verifyAuth(t *testing.T, keys testKeys, r *http.Request) map[string]any {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)

	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	tok, err := jwt.Parse(bearer, func(*jwt.Token) (any, error) { return keys.apiPub, nil },
		jwt.WithValidMethods([]string{"EdDSA"}), jwt.WithAudience("cdp_service"), jwt.WithIssuer("cdp"))
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "organizations/org/apiKeys/key", claims["sub"])
	assert.Equal(t, "organizations/org/apiKeys/key", tok.Header["kid"])
	uris := claims["uris"].([]any)
	require.Len(t, uris, 1)
	assert.Equal(t, r.Method+" "+r.Host+r.URL.Path, uris[0])

	walletTok, err := jwt.Parse(r.Header.Get("X-Wallet-Auth"), func(*jwt.Token) (any, error) { return &keys.walletKey.PublicKey, nil },
		jwt.WithValidMethods([]string{"ES256"}))
	require.NoError(t, err)
	wc := walletTok.Claims.(jwt.MapClaims)
	hash, err := requestHash(body)
	require.NoError(t, err)
	assert.Equal(t, hash, wc["reqHash"])
	assert.NotEmpty(t, wc["jti"])

	assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

func TestCreateAccount(t *testing.T) {
	keys := newTestKeys(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/platform/v2/evm/accounts", r.URL.Path)
		verifyAuth(t, keys, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"address":"0x145177cd8f0AD7aDE30de1CF65B13f5f45E19e91","createdAt":"2026-02-14T00:00:00Z"}`))
	}))
	defer srv.Close()

	address, err := newTestCDP(t, keys, srv.URL).CreateAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x145177cd8f0AD7aDE30de1CF65B13f5f45E19e91", address)
}

func TestSubmitTokenTransfer(t *testing.T) {
	keys := newTestKeys(t)
	from := "0x145177cd8f0AD7aDE30de1CF65B13f5f45E19e91"
	token := common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
	data, err := erc20.EncodeTransfer(common.HexToAddress("0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6"), big.NewInt(2_500_000))
	require.NoError(t, err)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/platform/v2/evm/accounts/"+from+"/send/transaction", r.URL.Path)
		body := verifyAuth(t, keys, r)
		assert.Equal(t, "base", body["network"])

		raw, err := hexutil.Decode(body["transaction"].(string))
		require.NoError(t, err)
		var tx types.Transaction
		require.NoError(t, tx.UnmarshalBinary(raw))
		assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
		assert.Equal(t, token, *tx.To())
		assert.Equal(t, data, tx.Data())
		assert.Equal(t, 0, tx.Value().Sign())
		assert.Equal(t, int64(8453), tx.ChainId().Int64())

		_, _ = w.Write([]byte(`{"transactionHash":"0xfeed"}`))
	}))
	defer srv.Close()

	account := model.Account{Address: from, Kind: model.AccountKindServerCustodial}
	txID, err := newTestCDP(t, keys, srv.URL).Submit(context.Background(), account,
		&model.CallPayload{Target: token, Data: data, Value: new(big.Int)})
	require.NoError(t, err)
	assert.Equal(t, "0xfeed", txID)
	assert.Equal(t, 1, calls)
}

func TestSubmitAPIErrorIsNotRetried(t *testing.T) {
	keys := newTestKeys(t)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorType":"invalid_request","errorMessage":"nonce too low","correlationId":"abc"}`))
	}))
	defer srv.Close()

	_, err := newTestCDP(t, keys, srv.URL).Submit(context.Background(),
		model.Account{Address: "0x145177cd8f0AD7aDE30de1CF65B13f5f45E19e91"},
		&model.CallPayload{Target: common.HexToAddress("0xD75f990150D00EB02CfA22Ff49c659486C1AE4C6"), Value: big.NewInt(1)})
	require.Error(t, err)
	assert.Equal(t, walleterr.KindTransport, walleterr.KindOf(err))
	assert.Contains(t, err.Error(), "nonce too low")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, 1, calls)
}

func TestMissingCredentialsFailBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	c, err := NewCDPClient(CDPConfig{BaseURL: srv.URL, Network: "base", ChainID: 8453}, zap.NewNop())
	require.NoError(t, err)

	_, err = c.CreateAccount(context.Background())
	assert.Equal(t, walleterr.KindConfiguration, walleterr.KindOf(err))

	_, err = c.Submit(context.Background(), model.Account{}, &model.CallPayload{})
	assert.Equal(t, walleterr.KindConfiguration, walleterr.KindOf(err))
	assert.Zero(t, calls)
}

func TestNewCDPClientRejectsBadSecrets(t *testing.T) {
	_, err := NewCDPClient(CDPConfig{BaseURL: "https://api.cdp.coinbase.com", APIKeyID: "k", APIKeySecret: "not base64!"}, zap.NewNop())
	assert.Equal(t, walleterr.KindConfiguration, walleterr.KindOf(err))

	_, err = NewCDPClient(CDPConfig{BaseURL: "https://api.cdp.coinbase.com", WalletSecret: base64.StdEncoding.EncodeToString([]byte("short"))}, zap.NewNop())
	assert.Equal(t, walleterr.KindConfiguration, walleterr.KindOf(err))

	_, err = NewCDPClient(CDPConfig{BaseURL: "::bad"}, zap.NewNop())
	assert.Equal(t, walleterr.KindConfiguration, walleterr.KindOf(err))
}

func TestRequestHashIsKeyOrderIndependent(t *testing.T) {
	a, err := requestHash([]byte(`{"network":"base","transaction":"0x01"}`))
	require.NoError(t, err)
	b, err := requestHash([]byte(`{"transaction":"0x01","network":"base"}`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
