/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package verifiedid

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	// DefaultAPIEndpoint is the base URL of the Verified ID Request Service REST API.
	DefaultAPIEndpoint = "https://verifiedid.did.msidentity.com/v1.0/verifiableCredentials/"
	// DefaultScope is the scope of access tokens for the Request Service REST API.
	DefaultScope = "3db474b9-6a0c-4840-96ac-1fceb342124f/.default"
	// apiKeyEnv is the environment variable that holds the callback API key, when not configured otherwise.
	apiKeyEnv = "API-KEY"
	// defaultPhotoClaimName is used for face checks when no photo claim name is configured or requested.
	defaultPhotoClaimName = "photo"
	// defaultFaceCheckThreshold is the default match confidence threshold of a face check.
	defaultFaceCheckThreshold = 70
)

// Config holds the configuration of the Verified ID engine.
type Config struct {
	// APIEndpoint is the base URL of the Request Service REST API, ending with a slash.
	APIEndpoint string `koanf:"apiendpoint"`
	// TenantID, ClientID and ClientSecret are the app registration used to acquire access tokens.
	TenantID     string `koanf:"tenantid"`
	ClientID     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	Scope        string `koanf:"scope"`
	// DIDAuthority is the DID of the verifier/issuer.
	DIDAuthority       string `koanf:"didauthority"`
	CredentialType     string `koanf:"credentialtype"`
	CredentialManifest string `koanf:"credentialmanifest"`
	ClientName         string `koanf:"clientname"`
	Purpose            string `koanf:"purpose"`
	IncludeQRCode      bool   `koanf:"includeqrcode"`
	IncludeReceipt     bool   `koanf:"includereceipt"`
	UseFaceCheck       bool   `koanf:"usefacecheck"`
	PhotoClaimName     string `koanf:"photoclaimname"`
	FaceCheckThreshold int    `koanf:"facecheckthreshold"`
	// IssuancePinLength is the number of digits of the issuance PIN code. 0 disables the PIN code.
	IssuancePinLength int `koanf:"issuancepinlength"`
	// IssuanceClaims are the claims of issued credentials. They can be overridden per request.
	IssuanceClaims map[string]string `koanf:"issuanceclaims"`
	// IssuanceExpirationDate is passed as is, e.g. "2030-12-31T00:00:00Z" or "EOD" (end of day).
	IssuanceExpirationDate string `koanf:"issuanceexpirationdate"`
	// APIKey is the secret the Verified ID API must send back in callbacks.
	APIKey string `koanf:"apikey"`
	// Timeout is the timeout of calls to the Verified ID API.
	Timeout time.Duration `koanf:"timeout"`
	// PresentationTemplate is the location of the default presentation request template.
	PresentationTemplate string `koanf:"presentationtemplate"`
	// RateLimit is the maximum number of initiated requests per minute. 0 disables rate limiting.
	RateLimit int `koanf:"ratelimit"`
}

// DefaultConfig returns the default configuration of the Verified ID engine.
func DefaultConfig() Config {
	return Config{
		APIEndpoint:        DefaultAPIEndpoint,
		Scope:              DefaultScope,
		ClientName:         "Verified ID broker",
		IncludeQRCode:      false,
		FaceCheckThreshold: defaultFaceCheckThreshold,
		IssuanceClaims:     map[string]string{},
		Timeout:            30 * time.Second,
	}
}

// FlagSet defines the set of flags that sets the Verified ID engine configuration.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("verifiedid", pflag.ContinueOnError)
	defs := DefaultConfig()
	flags.String("verifiedid.apiendpoint", defs.APIEndpoint, "Base URL of the Verified ID Request Service REST API.")
	flags.String("verifiedid.tenantid", defs.TenantID, "Tenant ID of the app registration used to acquire access tokens.")
	flags.String("verifiedid.clientid", defs.ClientID, "Client ID of the app registration used to acquire access tokens.")
	flags.String("verifiedid.clientsecret", defs.ClientSecret, "Client secret of the app registration used to acquire access tokens.")
	flags.String("verifiedid.scope", defs.Scope, "Scope of the access tokens.")
	flags.String("verifiedid.didauthority", defs.DIDAuthority, "DID of the verifier and issuer.")
	flags.String("verifiedid.credentialtype", defs.CredentialType, "Type of the credential that is requested and issued.")
	flags.String("verifiedid.credentialmanifest", defs.CredentialManifest, "URL of the manifest of issued credentials.")
	flags.String("verifiedid.clientname", defs.ClientName, "Display name shown in the wallet.")
	flags.String("verifiedid.purpose", defs.Purpose, "Purpose of presentation requests shown in the wallet.")
	flags.Bool("verifiedid.includeqrcode", defs.IncludeQRCode, "Whether the Verified ID API should return a QR code image.")
	flags.Bool("verifiedid.includereceipt", defs.IncludeReceipt, "Whether presentation callbacks should include a receipt.")
	flags.Bool("verifiedid.usefacecheck", defs.UseFaceCheck, "Whether every presentation request asks for a face check.")
	flags.String("verifiedid.photoclaimname", defs.PhotoClaimName, "Claim holding the photo used for face checks. Defaults to 'photo'.")
	flags.Int("verifiedid.facecheckthreshold", defs.FaceCheckThreshold, "Match confidence threshold of face checks (1-100).")
	flags.Int("verifiedid.issuancepinlength", defs.IssuancePinLength, "Number of digits of the issuance PIN code, 0 disables the PIN code.")
	flags.String("verifiedid.issuanceexpirationdate", defs.IssuanceExpirationDate, "Expiration date of issued credentials.")
	flags.String("verifiedid.apikey", defs.APIKey, "Secret the Verified ID API sends back in callbacks. "+
		"When not set, the API-KEY environment variable is used. When that isn't set either, a random key is generated.")
	flags.Duration("verifiedid.timeout", defs.Timeout, "Timeout of calls to the Verified ID API.")
	flags.String("verifiedid.presentationtemplate", defs.PresentationTemplate, "Location of the default presentation request template: "+
		"a file path, file:// or https:// URL.")
	flags.Int("verifiedid.ratelimit", defs.RateLimit, "Maximum number of requests that can be initiated per minute, 0 disables rate limiting.")
	return flags
}
