// Package utils contains various common utils separate by utility types
package utils

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

// PersisterType is the type of persister to use.
type PersisterType int

const (
	// PersisterTypeInvalid is an invalid persister value
	PersisterTypeInvalid PersisterType = iota

	// PersisterTypeNone is a persister that does nothing but return default values
	PersisterTypeNone

	// PersisterTypeMemory is a persister that keeps everything in process memory
	PersisterTypeMemory

	// PersisterTypePostgresql is a persister that uses PostgreSQL as the backend
	PersisterTypePostgresql
)

var (
	// PersisterNameToType maps valid persister names to the types above
	PersisterNameToType = map[string]PersisterType{
		"none":       PersisterTypeNone,
		"memory":     PersisterTypeMemory,
		"postgresql": PersisterTypePostgresql,
	}
)

// LensEnvironment are the defaults of a Lens deployment
type LensEnvironment struct {
	APIURL              string
	LensHubProxyAddress string
	ChainID             int64
	WebsiteURL          string
}

var (
	// LensEnvironments maps valid Lens environment names to their defaults
	LensEnvironments = map[string]*LensEnvironment{
		"mainnet": {
			APIURL:              "https://api.lens.dev",
			LensHubProxyAddress: "0xDb46d1Dc155634FbC732f92E853b10B288AD5a1d",
			ChainID:             137,
			WebsiteURL:          "https://tape.xyz",
		},
		"testnet": {
			APIURL:              "https://api-mumbai.lens.dev",
			LensHubProxyAddress: "0x60Ae865ee4C725cd04353b5AAb364553f56ceF82",
			ChainID:             80001,
			WebsiteURL:          "https://testnet.tape.xyz",
		},
		"staging": {
			APIURL:              "https://staging-api-social-mumbai.lens.crtlkey.com",
			LensHubProxyAddress: "0x60Ae865ee4C725cd04353b5AAb364553f56ceF82",
			ChainID:             80001,
			WebsiteURL:          "https://testnet.tape.xyz",
		},
	}
)

const (
	envVarPrefix = "tape"

	usageListFormat = `The publisher is configured via environment vars only. The following environment variables can be used:
{{range .}}
{{usage_key .}}
  description: {{usage_description .}}
  type:        {{usage_type .}}
  default:     {{usage_default .}}
  required:    {{usage_required .}}
{{end}}
`
)

// NOTE: After envconfig populates PublisherConfig with the environment vars,
// there is nothing preventing the PublisherConfig fields from being mutated.

// PublisherConfig is the master config for the publisher derived from environment
// variables.
type PublisherConfig struct {
	LensEnv             string `split_words:"true" default:"mainnet" desc:"Lens environment: mainnet, testnet or staging"`
	LensAPIURL          string `envconfig:"lens_api_url" desc:"Overrides the Lens API URL of the environment"`
	LensAccessToken     string `split_words:"true" desc:"Lens API access token of the channel"`
	LensHubProxyAddress string `split_words:"true" desc:"Overrides the LensHub proxy address of the environment"`
	ChainID             int64  `envconfig:"chain_id" desc:"Overrides the chain id of the environment"`
	WebsiteURL          string `envconfig:"website_url" desc:"Overrides the website URL of the environment"`

	EthAPIURL         string `envconfig:"eth_api_url" required:"true" desc:"Polygon RPC address"`
	SignerPrivateKey  string `split_words:"true" required:"true" desc:"Hex private key of the channel owner"`
	MetadataUploadURL string `envconfig:"metadata_upload_url" default:"https://metadata.tape.xyz" desc:"Metadata upload worker URL"`
	AppID             string `envconfig:"app_id" default:"Live" desc:"App id added to every publication"`
	Locale            string `default:"en" desc:"Locale of the publication metadata"`
	CacheSize         int    `split_words:"true" default:"512" desc:"Number of publications kept in the cache"`

	CronConfig string `envconfig:"cron_config" default:"*/5 * * * *" desc:"Cron config string * * * * * of the queue reconciler"`

	PubSubProjectID       string `split_words:"true" desc:"Sets GPubSub project ID. If not set, events will not be published."`
	PubSubEventsTopicName string `split_words:"true" desc:"Sets GPubSub topic name for analytics events"`
	PubSubCredentialsFile string `split_words:"true" desc:"Sets the GPubSub credentials file, uses the default credentials if not set"`

	PersisterType            PersisterType `ignored:"true"`
	PersisterTypeName        string        `split_words:"true" default:"memory" desc:"Sets the persister type to use"`
	PersisterPostgresAddress string        `split_words:"true" desc:"If persister type is Postgresql, sets the address"`
	PersisterPostgresPort    int           `split_words:"true" desc:"If persister type is Postgresql, sets the port"`
	PersisterPostgresDbname  string        `split_words:"true" desc:"If persister type is Postgresql, sets the database name"`
	PersisterPostgresUser    string        `split_words:"true" desc:"If persister type is Postgresql, sets the database user"`
	PersisterPostgresPw      string        `split_words:"true" desc:"If persister type is Postgresql, sets the database password"`
}

// OutputUsage prints the usage string to os.Stdout
func (c *PublisherConfig) OutputUsage() {
	tabs := tabwriter.NewWriter(os.Stdout, 1, 0, 4, ' ', 0)
	_ = envconfig.Usagef(envVarPrefix, c, tabs, usageListFormat) // nolint: gosec
	_ = tabs.Flush()                                             // nolint: gosec
}

// PopulateFromEnv processes the environment vars, populates PublisherConfig
// with the respective values, and validates the values.
func (c *PublisherConfig) PopulateFromEnv() error {
	err := envconfig.Process(envVarPrefix, c)
	if err != nil {
		return err
	}

	err = c.populateLensEnvironment()
	if err != nil {
		return err
	}

	err = c.validateCronConfig()
	if err != nil {
		return err
	}

	err = c.validateURLs()
	if err != nil {
		return err
	}

	err = c.validateSigner()
	if err != nil {
		return err
	}

	err = c.validatePubSub()
	if err != nil {
		return err
	}

	err = c.populatePersisterType()
	if err != nil {
		return err
	}

	return c.validatePersister()
}

func (c *PublisherConfig) populateLensEnvironment() error {
	env, ok := LensEnvironments[c.LensEnv]
	if !ok {
		return errors.Errorf("Invalid Lens environment: '%v'", c.LensEnv)
	}
	if c.LensAPIURL == "" {
		c.LensAPIURL = env.APIURL
	}
	if c.LensHubProxyAddress == "" {
		c.LensHubProxyAddress = env.LensHubProxyAddress
	}
	if c.ChainID == 0 {
		c.ChainID = env.ChainID
	}
	if c.WebsiteURL == "" {
		c.WebsiteURL = env.WebsiteURL
	}
	if !common.IsHexAddress(c.LensHubProxyAddress) {
		return errors.Errorf("Invalid LensHub proxy address: '%v'", c.LensHubProxyAddress)
	}
	return nil
}

func (c *PublisherConfig) validateCronConfig() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(c.CronConfig)
	if err != nil {
		return errors.Errorf("Invalid cron config: '%v'", c.CronConfig)
	}
	return nil
}

func (c *PublisherConfig) validateURLs() error {
	if !IsValidURL(c.EthAPIURL, "http", "https", "ws", "wss") {
		return errors.Errorf("Invalid eth API URL: '%v'", c.EthAPIURL)
	}
	if !IsValidURL(c.LensAPIURL, "http", "https") {
		return errors.Errorf("Invalid Lens API URL: '%v'", c.LensAPIURL)
	}
	if !IsValidURL(c.MetadataUploadURL, "http", "https") {
		return errors.Errorf("Invalid metadata upload URL: '%v'", c.MetadataUploadURL)
	}
	if !IsValidURL(c.WebsiteURL, "http", "https") {
		return errors.Errorf("Invalid website URL: '%v'", c.WebsiteURL)
	}
	return nil
}

func (c *PublisherConfig) validateSigner() error {
	_, err := crypto.HexToECDSA(strings.TrimPrefix(c.SignerPrivateKey, "0x"))
	if err != nil {
		return errors.New("Invalid signer private key")
	}
	return nil
}

func (c *PublisherConfig) validatePubSub() error {
	if c.PubSubProjectID != "" && c.PubSubEventsTopicName == "" {
		return errors.New("PubSub events topic name required if project ID is set")
	}
	return nil
}

func (c *PublisherConfig) validatePersister() error {
	var err error
	if c.PersisterType == PersisterTypePostgresql {
		err = c.validatePostgresqlPersister()
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *PublisherConfig) validatePostgresqlPersister() error {
	if c.PersisterPostgresAddress == "" {
		return errors.New("Postgresql address required")
	}
	if c.PersisterPostgresPort == 0 {
		return errors.New("Postgresql port required")
	}
	if c.PersisterPostgresDbname == "" {
		return errors.New("Postgresql db name required")
	}
	return nil
}

func (c *PublisherConfig) populatePersisterType() error {
	var err error
	c.PersisterType, err = PersisterTypeFromName(c.PersisterTypeName)
	return err
}

// PersisterTypeFromName returns the correct persisterType from the string name
func PersisterTypeFromName(typeStr string) (PersisterType, error) {
	pType, ok := PersisterNameToType[typeStr]
	if !ok {
		validNames := make([]string, len(PersisterNameToType))
		index := 0
		for name := range PersisterNameToType {
			validNames[index] = name
			index++
		}
		return PersisterTypeInvalid,
			fmt.Errorf("Invalid persister value: %v; valid types %v", typeStr, validNames)
	}
	return pType, nil
}

// IsValidURL returns true if rawURL is an absolute URL with a host and one of
// the given schemes
func IsValidURL(rawURL string, schemes ...string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	for _, scheme := range schemes {
		if u.Scheme == scheme {
			return true
		}
	}
	return false
}
