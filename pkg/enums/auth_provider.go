package enums

import "fmt"

// AuthProvider records which identity mechanism created the account.
type AuthProvider string

const (
	AuthProviderLocal    AuthProvider = "local"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderFacebook AuthProvider = "facebook"
	AuthProviderPasskey  AuthProvider = "passkey"
)

func (p AuthProvider) String() string {
	return string(p)
}

func (p AuthProvider) IsValid() bool {
	switch p {
	case AuthProviderLocal, AuthProviderGoogle, AuthProviderFacebook, AuthProviderPasskey:
		return true
	}
	return false
}

func ParseAuthProvider(value string) (AuthProvider, error) {
	parsed := AuthProvider(value)
	if !parsed.IsValid() {
		return "", fmt.Errorf("invalid auth provider %q", value)
	}
	return parsed, nil
}
