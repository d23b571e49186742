package enums

import "fmt"

// AccountType distinguishes admin accounts from storefront customers.
type AccountType string

const (
	AccountTypeAdmin    AccountType = "admin"
	AccountTypeCustomer AccountType = "customer"
)

func (a AccountType) String() string {
	return string(a)
}

func (a AccountType) IsValid() bool {
	switch a {
	case AccountTypeAdmin, AccountTypeCustomer:
		return true
	}
	return false
}

func ParseAccountType(value string) (AccountType, error) {
	parsed := AccountType(value)
	if !parsed.IsValid() {
		return "", fmt.Errorf("invalid account type %q", value)
	}
	return parsed, nil
}
