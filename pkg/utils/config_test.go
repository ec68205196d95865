// Package utils_test contains tests for the config utils
package utils_test

import (
	"os"
	"strings"
	"testing"

	"github.com/tapexyz/tape-publisher/pkg/utils"
)

const (
	testPrivateKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
)

func clearEnv() {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "TAPE_") {
			os.Unsetenv(strings.SplitN(kv, "=", 2)[0]) // nolint: errcheck
		}
	}
}

func setValidEnv() {
	clearEnv()
	os.Setenv(
		"TAPE_ETH_API_URL",
		"https://rpc.ankr.com/polygon",
	)
	os.Setenv(
		"TAPE_SIGNER_PRIVATE_KEY",
		testPrivateKey,
	)
	os.Setenv(
		"TAPE_PERSISTER_TYPE_NAME",
		"postgresql",
	)
	os.Setenv(
		"TAPE_PERSISTER_POSTGRES_ADDRESS",
		"localhost",
	)
	os.Setenv(
		"TAPE_PERSISTER_POSTGRES_PORT",
		"5432",
	)
	os.Setenv(
		"TAPE_PERSISTER_POSTGRES_DBNAME",
		"tape_publisher",
	)
}

func TestPublisherConfig(t *testing.T) {
	setValidEnv()
	config := &utils.PublisherConfig{}
	err := config.PopulateFromEnv()
	if err != nil {
		t.Fatalf("Failed to populate from environment: err: %v", err)
	}
	if config.LensAPIURL != "https://api.lens.dev" {
		t.Errorf("Should have defaulted to the mainnet API, got %v", config.LensAPIURL)
	}
	if config.ChainID != 137 {
		t.Errorf("Should have defaulted to chain 137, got %v", config.ChainID)
	}
	if config.WebsiteURL != "https://tape.xyz" {
		t.Errorf("Should have defaulted to the mainnet website, got %v", config.WebsiteURL)
	}
	if config.PersisterType != utils.PersisterTypePostgresql {
		t.Errorf("Should have populated the persister type")
	}
	if config.AppID != "Live" || config.CacheSize != 512 {
		t.Errorf("Should have populated defaults")
	}
}

func TestTestnetPublisherConfig(t *testing.T) {
	setValidEnv()
	os.Setenv(
		"TAPE_LENS_ENV",
		"testnet",
	)
	os.Setenv(
		"TAPE_LENS_API_URL",
		"http://localhost:3000",
	)
	config := &utils.PublisherConfig{}
	err := config.PopulateFromEnv()
	if err != nil {
		t.Fatalf("Failed to populate from environment: err: %v", err)
	}
	if config.LensAPIURL != "http://localhost:3000" {
		t.Errorf("Should have kept the API override, got %v", config.LensAPIURL)
	}
	if config.ChainID != 80001 {
		t.Errorf("Should have used chain 80001, got %v", config.ChainID)
	}
	if config.LensHubProxyAddress != "0x60Ae865ee4C725cd04353b5AAb364553f56ceF82" {
		t.Errorf("Should have used the testnet LensHub, got %v", config.LensHubProxyAddress)
	}
}

func TestBadConfigs(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad lens env", "TAPE_LENS_ENV", "devnet"},
		{"bad persister name", "TAPE_PERSISTER_TYPE_NAME", "mysql"},
		{"bad postgres address", "TAPE_PERSISTER_POSTGRES_ADDRESS", ""},
		{"bad postgres port", "TAPE_PERSISTER_POSTGRES_PORT", "0"},
		{"bad postgres dbname", "TAPE_PERSISTER_POSTGRES_DBNAME", ""},
		{"bad cron config", "TAPE_CRON_CONFIG", "* *"},
		{"bad cron config", "TAPE_CRON_CONFIG", "* * * * * *"},
		{"bad eth url", "TAPE_ETH_API_URL", "ethaddress"},
		{"bad metadata url", "TAPE_METADATA_UPLOAD_URL", "ftp://metadata.tape.xyz"},
		{"bad signer key", "TAPE_SIGNER_PRIVATE_KEY", "0x1234"},
		{"bad lenshub address", "TAPE_LENS_HUB_PROXY_ADDRESS", "0x1234"},
		{"pubsub without topic", "TAPE_PUB_SUB_PROJECT_ID", "tape"},
	}
	for _, test := range tests {
		setValidEnv()
		os.Setenv(test.key, test.value)
		config := &utils.PublisherConfig{}
		err := config.PopulateFromEnv()
		if err == nil {
			t.Errorf("%v: should have failed to populate from environment", test.name)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	if !utils.IsValidURL("wss://polygon.example.com/ws", "ws", "wss") {
		t.Errorf("Should have been a valid websocket URL")
	}
	if utils.IsValidURL("https://polygon.example.com", "ws", "wss") {
		t.Errorf("Should have rejected the scheme")
	}
	if utils.IsValidURL("", "https") {
		t.Errorf("Should have rejected an empty URL")
	}
}
