package postgres

import (
	"fmt"
)

const (
	// SigNonceTableName is the name of the sig nonce table
	SigNonceTableName = "sig_nonce"
)

// CreateSigNonceTableQuery returns the query to create the sig nonce table
func CreateSigNonceTableQuery() string {
	return CreateSigNonceTableQueryString(SigNonceTableName)
}

// CreateSigNonceTableQueryString returns the query to create this table
func CreateSigNonceTableQueryString(tableName string) string {
	queryString := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s(
            profile_id TEXT PRIMARY KEY,
            nonce BIGINT NOT NULL DEFAULT 0
        );
    `, tableName)
	return queryString
}

// SigNonce is the model definition for the sig nonce table
type SigNonce struct {
	ProfileID string `db:"profile_id"`

	Nonce int64 `db:"nonce"`
}
