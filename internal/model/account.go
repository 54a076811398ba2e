package model

// AccountKind describes who holds the key of an account.
type AccountKind string

// AccountKindServerCustodial is an account whose key lives with the custody provider.
const AccountKindServerCustodial AccountKind = "server-custodial"

// Account is the single on-chain account managed by this process.
type Account struct {
	Address string      `json:"address"`
	Kind    AccountKind `json:"kind"`
}

// AccountResponse represents response for GET /wallet/account
type AccountResponse struct {
	Address  string `json:"address"`
	Kind     string `json:"kind"`
	Network  string `json:"network"`
	ChainID  int64  `json:"chainId"`
	Provider string `json:"provider"`
	QR       string `json:"QR"`
}
