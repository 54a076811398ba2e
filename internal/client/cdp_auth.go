package client

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	jwtIssuer   = "cdp"
	jwtAudience = "cdp_service"
	jwtTTL      = 2 * time.Minute
)

// apiSigner produces the bearer JWT for every CDP request.
type apiSigner struct {
	keyID  string
	key    crypto.Signer
	method jwt.SigningMethod
}

// parseAPIKey accepts either an Ed25519 key (base64 of 64 bytes) or an
// EC P-256 key in PEM form, the two formats CDP issues.
func parseAPIKey(keyID, secret string) (*apiSigner, error) {
	secret = strings.TrimSpace(secret)
	if strings.Contains(secret, "-----BEGIN") {
		key, err := jwt.ParseECPrivateKeyFromPEM([]byte(strings.ReplaceAll(secret, `\n`, "\n")))
		if err != nil {
			return nil, fmt.Errorf("failed to parse EC API key: %w", err)
		}
		return &apiSigner{keyID: keyID, key: key, method: jwt.SigningMethodES256}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode API key secret: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid Ed25519 API key length %d", len(raw))
	}
	return &apiSigner{keyID: keyID, key: ed25519.PrivateKey(raw), method: jwt.SigningMethodEdDSA}, nil
}

// token signs a short-lived JWT scoped to one request URI.
func (s *apiSigner) token(uri string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  s.keyID,
		"iss":  jwtIssuer,
		"aud":  []string{jwtAudience},
		"nbf":  now.Unix(),
		"exp":  now.Add(jwtTTL).Unix(),
		"uris": []string{uri},
	}
	token := jwt.NewWithClaims(s.method, claims)
	token.Header["kid"] = s.keyID
	token.Header["nonce"] = randomNonce()

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign API JWT: %w", err)
	}
	return signed, nil
}

// walletSigner produces the X-Wallet-Auth JWT required by account and
// signing endpoints.
type walletSigner struct {
	key *ecdsa.PrivateKey
}

// parseWalletSecret accepts the base64 DER (PKCS#8) EC key CDP issues.
func parseWalletSecret(secret string) (*walletSigner, error) {
	secret = strings.TrimSpace(secret)
	if strings.Contains(secret, "-----BEGIN") {
		key, err := jwt.ParseECPrivateKeyFromPEM([]byte(secret))
		if err != nil {
			return nil, fmt.Errorf("failed to parse wallet secret: %w", err)
		}
		return &walletSigner{key: key}, nil
	}

	der, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wallet secret: %w", err)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wallet secret: %w", err)
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("wallet secret is not an EC key")
	}
	return &walletSigner{key: key}, nil
}

// token signs a JWT binding the request URI and a hash of its body.
func (s *walletSigner) token(uri string, body []byte, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  uuid.NewString(),
		"uris": []string{uri},
	}
	if len(body) > 0 {
		hash, err := requestHash(body)
		if err != nil {
			return "", err
		}
		claims["reqHash"] = hash
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign wallet JWT: %w", err)
	}
	return signed, nil
}

// requestHash is the hex SHA-256 of the body re-encoded with sorted keys.
func requestHash(body []byte) (string, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("failed to canonicalize request body: %w", err)
	}
	canonical, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize request body: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func randomNonce() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(b)
}
